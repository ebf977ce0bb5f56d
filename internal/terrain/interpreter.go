package terrain

import (
	"math"
	"math/rand"

	"github.com/Hemifuture/terragen/internal/mesh"
)

// Run executes an ordered command list over a fresh height scratch buffer
// sized to m.N(), in template order (spec §4.2). Heights are free-floating
// float64 during execution; callers quantize to the final u8 field at
// Cleanup (spec §4.8), not here.
func Run(m *mesh.Mesh, commands []Command, r *rand.Rand) []float64 {
	height := make([]float64, m.N())
	rng := newRandSource(r)

	for _, cmd := range commands {
		apply(m, height, cmd, rng)
	}

	return height
}

func apply(m *mesh.Mesh, height []float64, cmd Command, rng randSource) {
	switch c := cmd.(type) {
	case AddCmd:
		applyAdd(height, c)
	case MultiplyCmd:
		applyMultiply(height, c)
	case SmoothCmd:
		applySmooth(m, height, c)
	case NormalizeCmd:
		applyNormalize(height)
	case SetSeaLevelCmd:
		applySetSeaLevel(height, c)
	case MaskCmd:
		applyMask(m, height, c)
	case InvertCmd:
		applyInvert(m, height, c, rng)
	case MountainCmd:
		applyMountain(m, height, c)
	case HillCmd:
		applyHill(m, height, c, rng)
	case PitCmd:
		applyPit(m, height, c, rng)
	case RangeCmd:
		applyRange(m, height, c, rng)
	case TroughCmd:
		applyTrough(m, height, c, rng)
	case StraitCmd:
		applyStrait(m, height, c)
	}
}

func applyAdd(height []float64, c AddCmd) {
	for i := range height {
		height[i] += c.Value
	}
}

func applyMultiply(height []float64, c MultiplyCmd) {
	for i := range height {
		height[i] *= c.Factor
	}
}

// applySmooth averages each cell with its neighbors, repeated
// Iterations times, one full pass per iteration so a cell's updated
// height never feeds forward within the same pass.
func applySmooth(m *mesh.Mesh, height []float64, c SmoothCmd) {
	n := m.N()
	next := make([]float64, n)
	for iter := 0; iter < c.Iterations; iter++ {
		for i := 0; i < n; i++ {
			sum := height[i]
			count := 1
			for _, nb := range m.Neighbors[i] {
				sum += height[nb]
				count++
			}
			next[i] = sum / float64(count)
		}
		copy(height, next)
	}
}

func applyNormalize(height []float64) {
	if len(height) == 0 {
		return
	}
	min, max := height[0], height[0]
	for _, h := range height {
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	span := max - min
	if span == 0 {
		for i := range height {
			height[i] = 0
		}
		return
	}
	for i := range height {
		height[i] = (height[i] - min) / span * 255
	}
}

func applySetSeaLevel(height []float64, c SetSeaLevelCmd) {
	for i := range height {
		height[i] -= c.Level
	}
}

// applyMask multiplies every height by a gradient sampled in normalized
// map coordinates (spec §4.2 "Mask"): edge-fade darkens toward the map
// border, center-boost brightens toward the center, radial is center-boost
// by another name kept distinct for template readability.
func applyMask(m *mesh.Mesh, height []float64, c MaskCmd) {
	for i, p := range m.Points {
		nx := p.X / m.Width
		ny := p.Y / m.Height
		var g float64
		switch c.Mode {
		case MaskEdgeFade:
			dx := math.Min(nx, 1-nx)
			dy := math.Min(ny, 1-ny)
			g = math.Min(dx, dy) * 2
		case MaskCenterBoost, MaskRadial:
			dx := nx - 0.5
			dy := ny - 0.5
			d := math.Sqrt(dx*dx+dy*dy) / math.Sqrt(0.5)
			g = 1 - d
		default:
			g = 1
		}
		height[i] *= 1 + c.Strength*(g-1)
	}
}

// applyInvert mirrors each cell's height with its reflection across the
// chosen axis with probability Probability, leaving the rest untouched
// (spec §4.2 "Invert").
func applyInvert(m *mesh.Mesh, height []float64, c InvertCmd, rng randSource) {
	if rng.float64() >= c.Probability {
		return
	}
	n := m.N()
	mirrored := make([]float64, n)
	for i, p := range m.Points {
		var target mesh.Point
		switch c.Axis {
		case AxisX:
			target = mesh.Point{X: m.Width - p.X, Y: p.Y}
		case AxisY:
			target = mesh.Point{X: p.X, Y: m.Height - p.Y}
		default:
			target = p
		}
		mirrored[i] = height[m.NearestCell(target)]
	}
	copy(height, mirrored)
}

// applyMountain adds a single conical peak centered at (X,Y) (normalized
// [0,1]) with linear falloff to zero at Radius (normalized map-diagonal
// fraction), per spec §4.2 "Mountain".
func applyMountain(m *mesh.Mesh, height []float64, c MountainCmd) {
	center := mesh.Point{X: c.X * m.Width, Y: c.Y * m.Height}
	diag := math.Sqrt(m.Width*m.Width + m.Height*m.Height)
	radius := c.Radius * diag
	if radius <= 0 {
		return
	}
	for i, p := range m.Points {
		dx := p.X - center.X
		dy := p.Y - center.Y
		d := math.Sqrt(dx*dx + dy*dy)
		if d >= radius {
			continue
		}
		height[i] += c.Height * (1 - d/radius)
	}
}

func blobCenter(m *mesh.Mesh, xr, yr Range01, rng randSource) mesh.Point {
	x := xr.Sample(rng.float64()) * m.Width
	y := yr.Sample(rng.float64()) * m.Height
	return mesh.Point{X: x, Y: y}
}

// applyHill grows Count independent BFS blobs of positive height, each
// seeded at a random point within the given ranges (spec §4.2
// "Hill", "Blob growth").
func applyHill(m *mesh.Mesh, height []float64, c HillCmd, rng randSource) {
	power := BlobPower(m.N())
	for i := 0; i < c.Count; i++ {
		center := blobCenter(m, c.XR, c.YR, rng)
		seed := m.NearestCell(center)
		h := c.HeightR.Sample(rng.float64())
		delta := diffuse(m.Neighbors, []int{seed}, h, power, rng)
		for j, d := range delta {
			height[j] += d
		}
	}
}

// applyPit is Hill with the sign of the delta flipped (spec §4.2 "Pit,
// same as Hill with negative height").
func applyPit(m *mesh.Mesh, height []float64, c PitCmd, rng randSource) {
	power := BlobPower(m.N())
	for i := 0; i < c.Count; i++ {
		center := blobCenter(m, c.XR, c.YR, rng)
		seed := m.NearestCell(center)
		h := c.HeightR.Sample(rng.float64())
		delta := diffuse(m.Neighbors, []int{seed}, h, power, rng)
		for j, d := range delta {
			height[j] -= d
		}
	}
}

// pathEndpoints picks a start and end cell for a Range/Trough command: the
// start is drawn from the given center ranges, the end is offset along
// an angle drawn from AngleR (a fraction of a full turn, scaled by 2π) at
// a distance drawn from LengthR (fraction of the map diagonal).
func pathEndpoints(m *mesh.Mesh, c lineShapeFields, rng randSource) (start, end int) {
	diag := math.Sqrt(m.Width*m.Width + m.Height*m.Height)
	startPt := blobCenter(m, c.XR, c.YR, rng)
	length := c.LengthR.Sample(rng.float64()) * diag
	angle := c.AngleR.Sample(rng.float64()) * 2 * math.Pi
	endPt := mesh.Point{
		X: startPt.X + length*math.Cos(angle),
		Y: startPt.Y + length*math.Sin(angle),
	}
	return m.NearestCell(startPt), m.NearestCell(endPt)
}

// applyRangeOrTrough traces Count mountain/trench lines between random
// endpoints and diffuses a multi-seed BFS blob (sign set by the caller)
// outward from the traced path, using the line-power falloff exponent
// (spec §4.2 "Range/Trough growth").
func applyRangeOrTrough(m *mesh.Mesh, height []float64, count int, heightR, widthR Range01, endpoints func() (int, int), rng randSource, negate bool) {
	basePower := LinePower(m.N())
	for i := 0; i < count; i++ {
		start, end := endpoints()
		path := tracePath(m.Points, m.Neighbors, start, end, rng)
		h := heightR.Sample(rng.float64())

		// A wider range spreads its diffusion further from the traced
		// path: blend basePower toward 1 (slower decay) as width grows.
		width := widthR.Sample(rng.float64())
		power := basePower + (1-basePower)*width

		delta := diffuse(m.Neighbors, path, h, power, rng)
		for j, d := range delta {
			if negate {
				height[j] -= d
			} else {
				height[j] += d
			}
		}
	}
}

func applyRange(m *mesh.Mesh, height []float64, c RangeCmd, rng randSource) {
	fields := lineShapeFields(c)
	applyRangeOrTrough(m, height, fields.Count, fields.HeightR, fields.WidthR, func() (int, int) {
		return pathEndpoints(m, fields, rng)
	}, rng, false)
}

func applyTrough(m *mesh.Mesh, height []float64, c TroughCmd, rng randSource) {
	fields := lineShapeFields(c)
	applyRangeOrTrough(m, height, fields.Count, fields.HeightR, fields.WidthR, func() (int, int) {
		return pathEndpoints(m, fields, rng)
	}, rng, true)
}

// applyStrait carves a straight depression across the map at Position
// (normalized fraction along the perpendicular axis), Width wide (map-
// extent fraction), lowering height by Depth within the band (spec §4.2
// "Strait").
func applyStrait(m *mesh.Mesh, height []float64, c StraitCmd) {
	for i, p := range m.Points {
		var coord, extent float64
		switch c.Direction {
		case StraitHorizontal:
			coord, extent = p.Y, m.Height
		case StraitVertical:
			coord, extent = p.X, m.Width
		default:
			continue
		}
		center := c.Position * extent
		halfWidth := c.Width * extent / 2
		d := math.Abs(coord - center)
		if d >= halfWidth {
			continue
		}
		height[i] -= c.Depth * (1 - d/halfWidth)
	}
}
