package remesh

// minIslandFaces is the smallest connected component worth remeshing.
// Anything below this is degenerate geometry that the isotropic remesher
// can't do anything useful with, so it is dropped.
const minIslandFaces = 4

// buildEdgeToFaceMap maps each directed edge (ordered vertex-index pair, per
// triangle winding) to the triangle that owns it. With consistent winding,
// a triangle's neighbor across edge (a,b) is the owner of (b,a).
func buildEdgeToFaceMap(triangles []Triangle) map[[2]int]int {
	edgeToFace := make(map[[2]int]int, len(triangles)*3)
	for index, face := range triangles {
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			edgeToFace[[2]int{face[i], face[j]}] = index
		}
	}
	return edgeToFace
}

// splitToIslands partitions the triangles into connected components via
// breadth-first traversal over shared edges. Boundary and non-manifold edges
// have no opposite-oriented twin in the map and simply terminate expansion.
// Components smaller than minIslandFaces are discarded.
func splitToIslands(triangles []Triangle) [][]Triangle {
	edgeToFace := buildEdgeToFaceMap(triangles)

	var islands [][]Triangle
	processed := make(map[int]struct{}, len(triangles))
	var queue []int
	for seed := range triangles {
		if _, done := processed[seed]; done {
			continue
		}
		queue = append(queue[:0], seed)
		var island []Triangle
		for len(queue) > 0 {
			index := queue[0]
			queue = queue[1:]
			if _, done := processed[index]; done {
				continue
			}
			face := triangles[index]
			for i := 0; i < 3; i++ {
				j := (i + 1) % 3
				if opposite, found := edgeToFace[[2]int{face[j], face[i]}]; found {
					queue = append(queue, opposite)
				}
			}
			island = append(island, face)
			processed[index] = struct{}{}
		}
		if len(island) < minIslandFaces {
			continue
		}
		islands = append(islands, island)
	}
	return islands
}

// buildIsland renumbers an island's triangles into a local vertex slice and
// derives its gradient size. The vertices are already in the working frame;
// the extent ratio is computed in original units so the density parameter
// scales with real size.
func buildIsland(faces []Triangle, vertices []Vec, n normalization, gradientSize float64) Island {
	island := Island{Triangles: make([]Triangle, 0, len(faces))}
	oldToNew := make(map[int]int)
	for _, face := range faces {
		var triangle Triangle
		for i := 0; i < 3; i++ {
			old := face[i]
			if old < 0 || old >= len(vertices) {
				fatalf("triangle references vertex %d of %d", old, len(vertices))
			}
			local, seen := oldToNew[old]
			if !seen {
				local = len(island.Vertices)
				oldToNew[old] = local
				island.Vertices = append(island.Vertices, vertices[old])
			}
			triangle[i] = local
		}
		island.Triangles = append(island.Triangles, triangle)
	}

	_, localHalfExtent := boundingFactors(island.Vertices)
	localHalfExtent *= n.recoverScale
	island.GradientSize = gradientSize * (localHalfExtent / n.maxHalfExtent)
	return island
}

// prepareIslands normalizes a copy of the mesh and builds its retained
// islands. ErrEmptyMesh is returned when nothing survives the minimum-size
// filter.
func prepareIslands(mesh Mesh, cfg Config) ([]Island, normalization, error) {
	vertices := make([]Vec, len(mesh.Vertices))
	copy(vertices, mesh.Vertices)
	n := normalizeVertices(vertices)

	groups := splitToIslands(mesh.Triangles)
	if len(groups) == 0 {
		return nil, n, ErrEmptyMesh
	}

	islands := make([]Island, 0, len(groups))
	for _, faces := range groups {
		islands = append(islands, buildIsland(faces, vertices, n, cfg.GradientSize))
	}
	return islands, n, nil
}

// Islands returns the retained islands of the mesh, in the normalized
// working frame. This is the first half of Run, exposed so tools can
// inspect how a mesh decomposes without configuring a toolchain.
func Islands(mesh Mesh, cfg Config) ([]Island, error) {
	islands, _, err := prepareIslands(mesh, cfg)
	return islands, err
}
