package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/sshashank124/fission-sub000/pkg/geometry"
	"github.com/sshashank124/fission-sub000/pkg/renderer"
)

func newTable(buf *bytes.Buffer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

func displayRenderStats(stats *renderer.RenderStats) {
	if len(stats.Passes) == 0 {
		logger.Notice("no passes rendered")
		return
	}

	var buf bytes.Buffer
	table := newTable(&buf, "Pass", "Tiles", "Samples", "Render time", "Worker time", "Samples/s")
	for _, pass := range stats.Passes {
		table.Append([]string{
			fmt.Sprintf("%d", pass.Pass),
			fmt.Sprintf("%d", pass.Tiles),
			fmt.Sprintf("%d", pass.Samples),
			pass.Duration.String(),
			pass.TileTime.String(),
			fmt.Sprintf("%.0f", pass.SamplesPerSecond()),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d workers", stats.NumWorkers),
		fmt.Sprintf("%d", stats.TotalSamples()),
		stats.Elapsed.String(),
		"",
		fmt.Sprintf("%.1f spp", stats.AverageSamples()),
	})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}

func displaySceneInfo(in *renderer.Integrator) {
	sc := in.Scene
	cam := sc.Camera

	var buf bytes.Buffer
	table := newTable(&buf, "Setting", "Value")
	table.AppendBulk([][]string{
		{"Resolution", fmt.Sprintf("%dx%d", cam.Width, cam.Height)},
		{"Field of view", fmt.Sprintf("%.1f", cam.FOV)},
		{"Lens radius", fmt.Sprintf("%g", cam.LensRadius)},
		{"Tracer", in.Tracer.Kind.String()},
		{"Sampler", fmt.Sprintf("%s, %d spp", in.Sampler.Kind, in.Sampler.SamplesPerPixel)},
		{"Passes", fmt.Sprintf("%d", in.Passes)},
		{"Scene radius", fmt.Sprintf("%.3f", sc.Radius())},
	})
	table.Render()

	table = newTable(&buf, "Shape", "Type", "Triangles", "Area", "BSDF", "Emissive")
	triangles := 0
	for i, shape := range sc.Shapes {
		count := 0
		if shape.Kind == geometry.ShapeMesh {
			count = len(shape.Mesh.Triangles)
		}
		triangles += count
		table.Append([]string{
			fmt.Sprintf("%d", i),
			shape.Kind.String(),
			fmt.Sprintf("%d", count),
			fmt.Sprintf("%.3f", shape.SurfaceArea()),
			shape.BSDF.Kind.String(),
			fmt.Sprintf("%t", shape.IsEmissive()),
		})
	}
	table.SetFooter([]string{"", "TOTAL", fmt.Sprintf("%d", triangles), "", "", ""})
	table.Render()

	table = newTable(&buf, "Emitter", "Type", "Power", "Selection")
	for i, e := range sc.Emitters {
		table.Append([]string{
			fmt.Sprintf("%d", i),
			e.Kind.String(),
			fmt.Sprintf("%.3f", e.Power(sc.Radius())),
			fmt.Sprintf("%02.1f %%", 100*sc.LightSelectionPDF(i)),
		})
	}
	table.Render()

	logger.Noticef("scene information\n%s", buf.String())
}
