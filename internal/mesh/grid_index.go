package mesh

import "math"

// gridCell identifies one bucket of the uniform spatial grid.
type gridCell struct{ x, y int }

// gridIndex is a grid-bucket spatial index over a fixed point set,
// adapted from the teacher's entity-tracking SpatialGrid
// (internal/spatial/grid.go) to index immutable mesh sites instead of
// moving entities: built once at mesh-construction time, read-only
// afterward, so it carries no mutex.
type gridIndex struct {
	cellSize float64
	buckets  map[gridCell][]int
}

// buildGridIndex buckets points with a cell size chosen so average
// bucket occupancy is approximately 1, per spec §4.1 step 5.
func buildGridIndex(points []Point, width, height float64) *gridIndex {
	n := len(points)
	cellSize := 1.0
	if n > 0 {
		area := width * height
		cellSize = math.Sqrt(area / float64(n))
		if cellSize <= 0 {
			cellSize = 1.0
		}
	}

	idx := &gridIndex{cellSize: cellSize, buckets: make(map[gridCell][]int)}
	for i, p := range points {
		c := idx.cellOf(p)
		idx.buckets[c] = append(idx.buckets[c], i)
	}
	return idx
}

func (g *gridIndex) cellOf(p Point) gridCell {
	return gridCell{
		x: int(math.Floor(p.X / g.cellSize)),
		y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// nearest returns the index of the closest point to target, expanding the
// search ring-by-ring from target's bucket until a candidate is found and
// no closer candidate could exist in an unexamined ring.
func (g *gridIndex) nearest(points []Point, target Point) int {
	center := g.cellOf(target)
	best := -1
	bestDist := math.MaxFloat64

	for radius := 0; radius < 1<<20; radius++ {
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				if radius > 0 && abs(dx) != radius && abs(dy) != radius {
					continue // only scan the new outer ring
				}
				c := gridCell{center.x + dx, center.y + dy}
				for _, i := range g.buckets[c] {
					d := target.sub(points[i]).length()
					if d < bestDist {
						bestDist = d
						best = i
					}
				}
			}
		}
		// Once we have a candidate, one extra ring guarantees correctness
		// (a closer point could sit just across the current ring boundary).
		if best != -1 && float64(radius)*g.cellSize > bestDist {
			return best
		}
	}
	return best
}

// withinRadius returns every point index within radius of center.
func (g *gridIndex) withinRadius(points []Point, center Point, radius float64) []int {
	cellRadius := int(math.Ceil(radius/g.cellSize)) + 1
	mid := g.cellOf(center)
	r2 := radius * radius

	var out []int
	for dx := -cellRadius; dx <= cellRadius; dx++ {
		for dy := -cellRadius; dy <= cellRadius; dy++ {
			c := gridCell{mid.x + dx, mid.y + dy}
			for _, i := range g.buckets[c] {
				d := center.sub(points[i])
				if d.dot(d) <= r2 {
					out = append(out, i)
				}
			}
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
