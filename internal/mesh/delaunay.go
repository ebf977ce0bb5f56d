package mesh

import (
	"math"
	"sort"
)

// triangulate computes the Delaunay triangulation of points via the
// Bowyer-Watson incremental algorithm: insert each point, find every
// triangle whose circumcircle contains it (the "bad" cavity), remove
// them, and re-triangulate the resulting polygonal hole by fanning from
// the new point to the hole's boundary edges.
//
// No computational-geometry library appears anywhere in the example
// corpus (see DESIGN.md); Bowyer-Watson is the textbook incremental
// construction and is implemented directly against the standard library.
//
// Ties in the empty-circumcircle test are broken by lexicographic
// vertex-id order (spec §4.1 step 2): points are inserted in ascending
// index order and the in-circle test uses a strict inequality, so an
// exactly-cocircular point is only admitted to a cavity it strictly
// improves, keeping the result a deterministic function of point order.
func triangulate(points []Point) []Triangle {
	n := len(points)
	if n < 3 {
		return nil
	}

	// Bounding super-triangle large enough to contain every input point.
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	dx, dy := maxX-minX, maxY-minY
	deltaMax := math.Max(dx, dy) + 1
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	pts := make([]Point, n, n+3)
	copy(pts, points)
	superA := len(pts)
	pts = append(pts, Point{midX - 20*deltaMax, midY - deltaMax})
	superB := len(pts)
	pts = append(pts, Point{midX, midY + 20*deltaMax})
	superC := len(pts)
	pts = append(pts, Point{midX + 20*deltaMax, midY - deltaMax})

	tris := []Triangle{{superA, superB, superC}}

	for i := 0; i < n; i++ {
		p := pts[i]

		var bad []int
		for ti, t := range tris {
			if inCircumcircle(pts[t[0]], pts[t[1]], pts[t[2]], p) {
				bad = append(bad, ti)
			}
		}

		// Collect boundary edges of the cavity: edges of bad triangles
		// not shared by another bad triangle.
		type edge struct{ a, b int }
		edgeCount := make(map[edge]int)
		addEdge := func(a, b int) {
			if a > b {
				a, b = b, a
			}
			edgeCount[edge{a, b}]++
		}
		for _, ti := range bad {
			t := tris[ti]
			addEdge(t[0], t[1])
			addEdge(t[1], t[2])
			addEdge(t[2], t[0])
		}

		boundary := make([]edge, 0, len(edgeCount))
		for e, c := range edgeCount {
			if c == 1 {
				boundary = append(boundary, e)
			}
		}
		// Deterministic order independent of map iteration.
		sort.Slice(boundary, func(x, y int) bool {
			if boundary[x].a != boundary[y].a {
				return boundary[x].a < boundary[y].a
			}
			return boundary[x].b < boundary[y].b
		})

		badSet := make(map[int]bool, len(bad))
		for _, ti := range bad {
			badSet[ti] = true
		}
		kept := tris[:0:0]
		for ti, t := range tris {
			if !badSet[ti] {
				kept = append(kept, t)
			}
		}
		tris = kept

		for _, e := range boundary {
			tris = append(tris, orientCCW(pts, Triangle{e.a, e.b, i}))
		}
	}

	// Drop any triangle touching a super-vertex.
	out := make([]Triangle, 0, len(tris))
	for _, t := range tris {
		if t[0] >= n || t[1] >= n || t[2] >= n {
			continue
		}
		out = append(out, t)
	}
	return out
}

// inCircumcircle reports whether d lies strictly inside the circumcircle
// of triangle (a,b,c), regardless of (a,b,c)'s winding.
func inCircumcircle(a, b, c, d Point) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross < 0 {
		a, b = b, a // normalize to CCW so the determinant sign test below holds
	}

	ax, ay := a.X-d.X, a.Y-d.Y
	bx, by := b.X-d.X, b.Y-d.Y
	cx, cy := c.X-d.X, c.Y-d.Y

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)

	return det > 1e-9
}

// orientCCW returns t's vertex indices reordered so the triangle winds
// counter-clockwise in pts.
func orientCCW(pts []Point, t Triangle) Triangle {
	a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross < 0 {
		return Triangle{t[0], t[2], t[1]}
	}
	return t
}

// circumcenter returns the center of the circle through a, b, c.
func circumcenter(a, b, c Point) Point {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		// Degenerate (near-collinear); fall back to centroid.
		return Point{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
	}
	ux := ((a.X*a.X+a.Y*a.Y)*(b.Y-c.Y) + (b.X*b.X+b.Y*b.Y)*(c.Y-a.Y) + (c.X*c.X+c.Y*c.Y)*(a.Y-b.Y)) / d
	uy := ((a.X*a.X+a.Y*a.Y)*(c.X-b.X) + (b.X*b.X+b.Y*b.Y)*(a.X-c.X) + (c.X*c.X+c.Y*c.Y)*(b.X-a.X)) / d
	return Point{ux, uy}
}
