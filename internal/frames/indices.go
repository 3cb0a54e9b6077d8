package frames

import "math"

// Linspace returns up to count frame indices evenly spread over [0, total-1],
// rounded to the nearest frame. Duplicates produced by rounding are dropped so
// the result is strictly increasing.
func Linspace(total, count int) []int {
	if total <= 0 || count <= 0 {
		return nil
	}
	if count == 1 {
		return []int{0}
	}

	step := float64(total-1) / float64(count-1)
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx > total-1 {
			idx = total - 1
		}
		if len(out) > 0 && idx <= out[len(out)-1] {
			continue
		}
		out = append(out, idx)
	}
	return out
}
