package renderer

import "image"

// Tile is a rectangular region of the image processed as one unit of work
type Tile struct {
	ID     int             // Position in the grid, row major
	X, Y   int             // Grid coordinates of the tile
	Bounds image.Rectangle // Pixel bounds, clipped to the image
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultOptions().TileSize
	}

	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     tileID,
				X:      tileX,
				Y:      tileY,
				Bounds: image.Rect(x0, y0, x1, y1),
			})
			tileID++
		}
	}

	return tiles
}
