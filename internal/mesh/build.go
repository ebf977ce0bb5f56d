package mesh

import (
	"math"
	"math/rand"
	"sort"

	"github.com/Hemifuture/terragen/internal/apperr"
)

// Params configures mesh construction (spec §4.1).
type Params struct {
	Width, Height float64
	Spacing       float64 // target lattice spacing s
	Jitter        float64 // jitter fraction j in [0,1], default 0.45
}

// DefaultJitter is the spec's default jitter fraction.
const DefaultJitter = 0.45

// Build constructs the mesh for one seed: a jittered lattice, its
// Delaunay triangulation, the Voronoi dual, neighbor adjacency, and the
// spatial index (spec §4.1).
func Build(p Params, r *rand.Rand) (*Mesh, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, apperr.InvalidConfig("width/height", "map extent must be positive")
	}
	if p.Spacing <= 0 {
		return nil, apperr.InvalidConfig("cell_spacing", "must be positive")
	}
	jitter := p.Jitter
	if jitter == 0 {
		jitter = DefaultJitter
	}
	if jitter < 0 || jitter > 1 {
		return nil, apperr.InvalidConfig("jitter", "must be in [0,1]")
	}

	points := jitteredLattice(p.Width, p.Height, p.Spacing, jitter, r)
	if len(points) < 3 {
		return nil, apperr.InvariantViolated("mesh", "fewer than 3 points produced for given extent/spacing")
	}

	tris := triangulate(points)
	if len(tris) == 0 {
		return nil, apperr.InvariantViolated("mesh", "triangulation produced no triangles")
	}

	neighbors, cellTriangles := buildAdjacency(len(points), tris)
	voronoiVerts, ranges := buildVoronoiDual(points, tris, cellTriangles)

	m := &Mesh{
		Width:            p.Width,
		Height:           p.Height,
		Points:           points,
		Triangles:        tris,
		Neighbors:        neighbors,
		VoronoiVertices:  voronoiVerts,
		CellVertexRanges: ranges,
		index:            buildGridIndex(points, p.Width, p.Height),
	}

	if err := m.checkInvariants(); err != nil {
		return nil, err
	}
	return m, nil
}

// jitteredLattice places points on a regular lattice with spacing s,
// perturbed by a uniform offset in [-j*s, j*s]^2, with boundary points
// anchored exactly on the map edge so the convex hull covers
// [0,W]x[0,H] (spec §4.1 step 1).
func jitteredLattice(width, height, spacing, jitter float64, r *rand.Rand) []Point {
	var points []Point

	cols := int(width/spacing) + 1
	rows := int(height/spacing) + 1

	for row := 0; row <= rows; row++ {
		for col := 0; col <= cols; col++ {
			x := float64(col) * spacing
			y := float64(row) * spacing
			if x > width {
				x = width
			}
			if y > height {
				y = height
			}

			onBoundary := col == 0 || row == 0 || x == width || y == height
			if !onBoundary {
				x += (r.Float64()*2 - 1) * jitter * spacing
				y += (r.Float64()*2 - 1) * jitter * spacing
				if x < 0 {
					x = 0
				}
				if x > width {
					x = width
				}
				if y < 0 {
					y = 0
				}
				if y > height {
					y = height
				}
			}
			points = append(points, Point{x, y})
		}
	}

	return dedupe(points)
}

func dedupe(points []Point) []Point {
	seen := make(map[Point]bool, len(points))
	out := points[:0]
	for _, p := range points {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// buildAdjacency derives mutual neighbor sets from Delaunay half-edges in
// O(1) amortized lookup per cell, and records which triangles are
// incident to each cell (needed to build the Voronoi dual).
func buildAdjacency(n int, tris []Triangle) ([][]int, [][]int) {
	neighborSet := make([]map[int]bool, n)
	cellTriangles := make([][]int, n)
	for i := range neighborSet {
		neighborSet[i] = make(map[int]bool)
	}

	addEdge := func(a, b int) {
		neighborSet[a][b] = true
		neighborSet[b][a] = true
	}

	for ti, t := range tris {
		addEdge(t[0], t[1])
		addEdge(t[1], t[2])
		addEdge(t[2], t[0])
		cellTriangles[t[0]] = append(cellTriangles[t[0]], ti)
		cellTriangles[t[1]] = append(cellTriangles[t[1]], ti)
		cellTriangles[t[2]] = append(cellTriangles[t[2]], ti)
	}

	neighbors := make([][]int, n)
	for i, set := range neighborSet {
		list := make([]int, 0, len(set))
		for j := range set {
			list = append(list, j)
		}
		sort.Ints(list)
		neighbors[i] = list
	}
	return neighbors, cellTriangles
}

// buildVoronoiDual emits one vertex per triangle at its circumcenter and
// builds each cell's CCW-ordered polygon from the circumcenters of its
// incident triangles (spec §4.1 step 3).
func buildVoronoiDual(points []Point, tris []Triangle, cellTriangles [][]int) ([]Point, []CellRange) {
	centers := make([]Point, len(tris))
	for i, t := range tris {
		centers[i] = circumcenter(points[t[0]], points[t[1]], points[t[2]])
	}

	var verts []Point
	ranges := make([]CellRange, len(points))

	for i, incident := range cellTriangles {
		if len(incident) == 0 {
			ranges[i] = CellRange{Offset: len(verts), Length: 0}
			continue
		}
		site := points[i]
		ordered := append([]int(nil), incident...)
		sort.Slice(ordered, func(a, b int) bool {
			pa := centers[ordered[a]].sub(site)
			pb := centers[ordered[b]].sub(site)
			return angle(pa) < angle(pb)
		})

		offset := len(verts)
		for _, ti := range ordered {
			verts = append(verts, centers[ti])
		}
		ranges[i] = CellRange{Offset: offset, Length: len(ordered)}
	}

	return verts, ranges
}

func angle(p Point) float64 {
	return math.Atan2(p.Y, p.X)
}
