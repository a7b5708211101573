package remesh

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
)

// This is for debugging purposes only

const dbgDrawPadding = 20

// Draw the island's wireframe projected onto the XY plane. Good enough to
// eyeball whether the splitter carved the mesh where you expected.
func (island *Island) dbgDraw(scale float64) {
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, v := range island.Vertices {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}

	// Set up the context
	width := int(scale*(maxX-minX)) + dbgDrawPadding*2
	height := int(scale*(maxY-minY)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)

	c.SetLineWidth(1)
	for _, tri := range island.Triangles {
		a := island.Vertices[tri[0]]
		b := island.Vertices[tri[1]]
		cv := island.Vertices[tri[2]]
		c.MoveTo(a.X, a.Y)
		c.LineTo(b.X, b.Y)
		c.LineTo(cv.X, cv.Y)
		c.ClosePath()
	}
	c.SetRGB(0, 1, 1)
	c.Stroke()

	c.SavePNG("/tmp/island.png")
	imgcat.CatFile("/tmp/island.png", os.Stdout)
}
