// Inspect how a mesh decomposes before handing it to a full toolchain: load
// an OBJ, normalize it, split it to islands, and report per-island stats.
// The heavy collaborators (remesher, solver, extractor) are injected by
// library consumers, so this tool stops where they would start.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/logrusorgru/aurora"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/osuushi/quadmesh"
	"github.com/osuushi/quadmesh/obj"
	"github.com/osuushi/quadmesh/remesh"
)

var (
	input        = kingpin.Arg("mesh", "Input OBJ file, or - for stdin.").Required().String()
	gradientSize = kingpin.Flag("gradient-size", "Parameterization feature scale for the whole mesh.").
			Default("170").Float64()
	verbose = kingpin.Flag("verbose", "Log pipeline progress to stderr.").Short('v').Bool()
)

func main() {
	kingpin.Parse()

	if *verbose {
		quadmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	in := os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		kingpin.FatalIfError(err, "could not open %q", *input)
		defer f.Close()
		in = f
	}

	vertices, triangles, err := obj.Read(in)
	kingpin.FatalIfError(err, "could not parse %q", *input)
	fmt.Printf("Read %d vertices, %d triangles\n", len(vertices), len(triangles))

	cfg := quadmesh.DefaultConfig()
	cfg.GradientSize = *gradientSize

	islands, err := remesh.Islands(quadmesh.Mesh{Vertices: vertices, Triangles: triangles}, cfg)
	if err != nil {
		fmt.Println(aurora.Red(err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Split to %d island(s)\n", len(islands))
	for i, island := range islands {
		fmt.Printf("  %s: %d faces, %d vertices, gradient size %.2f\n",
			aurora.Green(fmt.Sprintf("island %d", i)),
			len(island.Triangles),
			len(island.Vertices),
			island.GradientSize,
		)
	}
}
