package hydrology

import "sort"

// accumulateFlux orders land cells by descending filled height (ties
// broken by ascending id for determinism) and pushes each cell's flux
// downstream to its flow-direction target, saturating at the u16 max
// (spec §4.6 "Flow accumulation"). precipitation is read as-is; the
// Climate stage runs after Hydrology (spec §2), so at this point the
// field is still its zero value and flux reduces to a uniform per-cell
// contribution — equivalent to a plain drainage-area accumulation.
func accumulateFlux(filled []float64, dir []int, precipitation []uint8, isWater []bool) []uint16 {
	n := len(filled)
	flux := make([]uint16, n)
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if isWater[i] {
			continue
		}
		order = append(order, i)
		base := uint16(1)
		if precipitation[i] > 1 {
			base = uint16(precipitation[i])
		}
		flux[i] = base
	}

	sort.Slice(order, func(a, b int) bool {
		ca, cb := order[a], order[b]
		if filled[ca] != filled[cb] {
			return filled[ca] > filled[cb]
		}
		return ca < cb
	})

	for _, i := range order {
		d := dir[i]
		if d == noDirection {
			continue
		}
		flux[d] = saturatingAddU16(flux[d], flux[i])
	}

	return flux
}

func saturatingAddU16(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	if sum > 0xFFFF {
		return 0xFFFF
	}
	return uint16(sum)
}
