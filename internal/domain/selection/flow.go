package selection

import (
	"math"
	"sort"

	"github.com/okian/moodmix/internal/domain/model"
)

// Flow returns tracks permuted into a rising-then-falling energy arc, then
// repairs adjacent jumps above threshold with a bounded local search. When
// the arc keeps more excess than plain ascending order, ascending order is
// returned: it has the least total excess of any ordering. The input slice
// is not modified.
func Flow(tracks []model.Track, threshold float64) []model.Track {
	if len(tracks) < 3 {
		out := make([]model.Track, len(tracks))
		copy(out, tracks)
		return out
	}

	sorted := make([]model.Track, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool { return energy(sorted[i]) < energy(sorted[j]) })

	// Organ pipe: even ranks climb, odd ranks descend.
	out := make([]model.Track, 0, len(sorted))
	for i := 0; i < len(sorted); i += 2 {
		out = append(out, sorted[i])
	}
	start := len(sorted) - 1
	if start%2 == 0 {
		start--
	}
	for i := start; i >= 1; i -= 2 {
		out = append(out, sorted[i])
	}

	smooth(out, threshold)
	if TotalExcess(out, threshold) > TotalExcess(sorted, threshold)+epsilon {
		return sorted
	}
	return out
}

// smooth applies improving moves until none is left: single-track
// relocation, where a one-slot move is an adjacent swap, and segment
// reversal. The number of passes is bounded by the track count.
func smooth(tracks []model.Track, threshold float64) {
	rest := make([]model.Track, 0, len(tracks))
	for pass := 0; pass < len(tracks); pass++ {
		moved := relocate(tracks, rest, threshold)
		if reverse(tracks, threshold) {
			moved = true
		}
		if !moved {
			return
		}
	}
}

// relocate moves each track to the slot that lowers total excess the most.
func relocate(tracks, rest []model.Track, threshold float64) bool {
	n := len(tracks)
	improved := false
	for i := 0; i < n; i++ {
		rest = append(rest[:0], tracks[:i]...)
		rest = append(rest, tracks[i+1:]...)
		base := removalDelta(tracks, i, threshold)

		bestPos, bestDelta := -1, -epsilon
		for p := 0; p <= len(rest); p++ {
			if p == i {
				continue
			}
			if d := base + insertionDelta(rest, tracks[i], p, threshold); d < bestDelta {
				bestPos, bestDelta = p, d
			}
		}
		if bestPos < 0 {
			continue
		}
		moved := tracks[i]
		copy(tracks, rest[:bestPos])
		tracks[bestPos] = moved
		copy(tracks[bestPos+1:], rest[bestPos:])
		improved = true
	}
	return improved
}

// reverse flips every segment tracks[i..j] whose reversal lowers total
// excess. Only the two boundary jumps change.
func reverse(tracks []model.Track, threshold float64) bool {
	n := len(tracks)
	improved := false
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			var d float64
			if i > 0 {
				d += excess(tracks[i-1], tracks[j], threshold) - excess(tracks[i-1], tracks[i], threshold)
			}
			if j+1 < n {
				d += excess(tracks[i], tracks[j+1], threshold) - excess(tracks[j], tracks[j+1], threshold)
			}
			if d >= -epsilon {
				continue
			}
			for l, r := i, j; l < r; l, r = l+1, r-1 {
				tracks[l], tracks[r] = tracks[r], tracks[l]
			}
			improved = true
		}
	}
	return improved
}

const epsilon = 1e-12

// removalDelta is the change in total excess from taking tracks[i] out.
func removalDelta(tracks []model.Track, i int, threshold float64) float64 {
	var d float64
	if i > 0 {
		d -= excess(tracks[i-1], tracks[i], threshold)
	}
	if i+1 < len(tracks) {
		d -= excess(tracks[i], tracks[i+1], threshold)
	}
	if i > 0 && i+1 < len(tracks) {
		d += excess(tracks[i-1], tracks[i+1], threshold)
	}
	return d
}

// insertionDelta is the change in total excess from inserting t before
// rest[p].
func insertionDelta(rest []model.Track, t model.Track, p int, threshold float64) float64 {
	var d float64
	if p > 0 {
		d += excess(rest[p-1], t, threshold)
	}
	if p < len(rest) {
		d += excess(t, rest[p], threshold)
	}
	if p > 0 && p < len(rest) {
		d -= excess(rest[p-1], rest[p], threshold)
	}
	return d
}

// TotalExcess sums how far every adjacent energy jump exceeds threshold.
func TotalExcess(tracks []model.Track, threshold float64) float64 {
	var sum float64
	for i := 0; i+1 < len(tracks); i++ {
		sum += excess(tracks[i], tracks[i+1], threshold)
	}
	return sum
}

func excess(a, b model.Track, threshold float64) float64 {
	return math.Max(0, math.Abs(energy(a)-energy(b))-threshold)
}

func energy(t model.Track) float64 {
	return t.FeaturesOrNeutral().Energy
}
