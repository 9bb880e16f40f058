package geometry

import (
	"math"
	"math/bits"
	"slices"
	"time"

	"github.com/sshashank124/fission-sub000/pkg/core"
	"github.com/sshashank124/fission-sub000/pkg/log"
)

const (
	// Number of SAH buckets evaluated along the split axis
	numBuckets = 16

	// Capacity of the traversal stack. The builder keeps tree depth below this.
	stackSize = 32

	// Centroid spreads below this are split at the median instead of binned
	minCentroidExtent = 1e-9
)

// Primitive is anything a BVH can hold
type Primitive interface {
	BBox() core.BBox
	Intersects(ray core.Ray) bool
	Intersect(ray core.Ray) (Interaction, bool)
}

// bvhNode is either a leaf holding an element index or an interior node holding
// its split axis and the index of its right child. The left child is always the next node.
type bvhNode struct {
	bbox  core.BBox
	index uint32
	axis  uint8
	leaf  bool
}

// BVH is a surface-area-heuristic bounding volume hierarchy stored as a flat depth-first array
type BVH[T Primitive] struct {
	nodes    []bvhNode
	elements []T
}

type buildItem struct {
	bbox     core.BBox
	centroid core.Vec3
	index    uint32
}

type buildStats struct {
	leafs    int
	maxDepth int
}

type builder struct {
	nodes []bvhNode
	stats buildStats
}

// NewBVH builds a hierarchy over elements. Leaves refer to elements by their position in the input slice.
func NewBVH[T Primitive](elements []T) (*BVH[T], error) {
	if len(elements) == 0 {
		return nil, ErrEmptyAggregate
	}

	start := time.Now()
	items := make([]buildItem, len(elements))
	for i, e := range elements {
		box := e.BBox()
		items[i] = buildItem{bbox: box, centroid: box.Center(), index: uint32(i)}
	}

	b := &builder{nodes: make([]bvhNode, 0, 2*len(elements)-1)}
	b.build(items, 0)

	if len(elements) > 1 {
		log.New("bvh").Debugf(
			"BVH build time: %d ms, elements: %d, nodes: %d, leafs: %d, maxDepth: %d",
			time.Since(start).Milliseconds(), len(elements), len(b.nodes), b.stats.leafs, b.stats.maxDepth,
		)
	}
	return &BVH[T]{nodes: b.nodes, elements: elements}, nil
}

// build appends the subtree for items in depth-first order and returns its node index
func (b *builder) build(items []buildItem, depth int) int {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	bbox := core.EmptyBBox()
	centroids := core.EmptyBBox()
	for _, item := range items {
		bbox = bbox.Union(item.bbox)
		centroids = centroids.UnionPoint(item.centroid)
	}

	self := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{bbox: bbox})

	if len(items) == 1 {
		b.stats.leafs++
		b.nodes[self].leaf = true
		b.nodes[self].index = items[0].index
		return self
	}

	axis := centroids.MaxExtentAxis()
	mid := b.split(items, bbox, centroids, axis, depth)

	b.build(items[:mid], depth+1)
	right := b.build(items[mid:], depth+1)
	b.nodes[self].axis = uint8(axis)
	b.nodes[self].index = uint32(right)
	return self
}

// split partitions items in place and returns the size of the left half
func (b *builder) split(items []buildItem, bbox, centroids core.BBox, axis, depth int) int {
	extent := centroids[axis].Extent()

	// A balanced split from here on bounds the remaining depth by log2(n), which keeps
	// the whole tree inside the traversal stack
	forceMedian := depth+bits.Len(uint(len(items)-1)) >= stackSize-1

	if extent < minCentroidExtent {
		return len(items) / 2
	}
	if forceMedian || bbox.SurfaceArea() == 0 {
		slices.SortFunc(items, func(a, c buildItem) int {
			return cmpFloat(a.centroid.Axis(axis), c.centroid.Axis(axis))
		})
		return len(items) / 2
	}

	lo := centroids[axis].Min
	bucketOf := func(item buildItem) int {
		k := int(numBuckets * (item.centroid.Axis(axis) - lo) / extent)
		return min(max(k, 0), numBuckets-1)
	}

	var counts [numBuckets]int
	var boxes [numBuckets]core.BBox
	for i := range boxes {
		boxes[i] = core.EmptyBBox()
	}
	for _, item := range items {
		k := bucketOf(item)
		counts[k]++
		boxes[k] = boxes[k].Union(item.bbox)
	}

	// Sweep from the right to collect suffix areas, then from the left to score each split
	var rightArea [numBuckets]float64
	var rightCount [numBuckets]int
	acc := core.EmptyBBox()
	n := 0
	for k := numBuckets - 1; k > 0; k-- {
		acc = acc.Union(boxes[k])
		n += counts[k]
		rightArea[k] = acc.SurfaceArea()
		rightCount[k] = n
	}

	invArea := 1 / bbox.SurfaceArea()
	bestCost := math.Inf(1)
	bestSplit := -1
	acc = core.EmptyBBox()
	n = 0
	for k := 1; k < numBuckets; k++ {
		acc = acc.Union(boxes[k-1])
		n += counts[k-1]
		if n == 0 || rightCount[k] == 0 {
			continue
		}
		cost := 1 + (float64(n)*acc.SurfaceArea()+float64(rightCount[k])*rightArea[k])*invArea
		if cost < bestCost {
			bestCost = cost
			bestSplit = k
		}
	}
	if bestSplit < 0 {
		return len(items) / 2
	}

	// Partition in place: items in buckets below the split go left
	mid := 0
	for i := range items {
		if bucketOf(items[i]) < bestSplit {
			items[i], items[mid] = items[mid], items[i]
			mid++
		}
	}
	return mid
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// fold walks the nodes accepted by visitNode front to back, calling leaf for every element.
// leaf returns the updated accumulator and whether traversal should stop.
func fold[T Primitive, A any](b *BVH[T], signs core.Bool3, acc A,
	visitNode func(A, *core.BBox) bool, leaf func(A, T) (A, bool)) A {
	var stack [stackSize]uint32
	sp := 0
	current := uint32(0)
	for {
		node := &b.nodes[current]
		if visitNode(acc, &node.bbox) {
			if node.leaf {
				var stop bool
				acc, stop = leaf(acc, b.elements[node.index])
				if stop {
					return acc
				}
			} else {
				// The left child holds the lower coordinates along the split axis
				if signs[node.axis] {
					stack[sp] = node.index
					current++
				} else {
					stack[sp] = current + 1
					current = node.index
				}
				sp++
				continue
			}
		}
		if sp == 0 {
			return acc
		}
		sp--
		current = stack[sp]
	}
}

type closestHit struct {
	ray   core.Ray
	hit   Interaction
	found bool
}

// Intersect returns the closest hit along the ray, narrowing the ray as hits are found
func (b *BVH[T]) Intersect(ray core.Ray) (Interaction, bool) {
	inv := ray.InverseDirection()
	result := fold(b, core.DirectionSigns(ray.Direction), closestHit{ray: ray},
		func(acc closestHit, box *core.BBox) bool {
			return box.HitInverse(acc.ray, inv)
		},
		func(acc closestHit, e T) (closestHit, bool) {
			if it, ok := e.Intersect(acc.ray); ok {
				acc.hit = it
				acc.found = true
				acc.ray = acc.ray.ClippedTo(it.T)
			}
			return acc, false
		})
	return result.hit, result.found
}

// Intersects reports whether anything lies along the ray, stopping at the first hit
func (b *BVH[T]) Intersects(ray core.Ray) bool {
	inv := ray.InverseDirection()
	return fold(b, core.DirectionSigns(ray.Direction), false,
		func(_ bool, box *core.BBox) bool {
			return box.HitInverse(ray, inv)
		},
		func(_ bool, e T) (bool, bool) {
			hit := e.Intersects(ray)
			return hit, hit
		})
}

// BBox returns the bounds of the whole hierarchy
func (b *BVH[T]) BBox() core.BBox {
	return b.nodes[0].bbox
}

// Elements returns the primitives in input order
func (b *BVH[T]) Elements() []T {
	return b.elements
}

// NodeCount returns the number of nodes in the flat array
func (b *BVH[T]) NodeCount() int {
	return len(b.nodes)
}
