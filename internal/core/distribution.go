package core

// Slice is one entry of a rendered category distribution: the numeric share
// plus the angular span for a pie representation and a positional intensity
// for styling.
type Slice struct {
	Name       string  `json:"name"`
	Amount     Money   `json:"amount"`
	Percentage float64 `json:"percentage"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	LargeArc   bool    `json:"large_arc"`
	Intensity  float64 `json:"intensity"`
}

// Slices start at 12 o'clock: a quarter-turn back from the positive x axis.
const startAngleOffset = -90.0

// RenderDistribution lays the given entries around a full circle in order,
// each spanning an angle proportional to its share of total. Entry i's start
// angle is the offset plus the sum of all preceding spans. A slice needs the
// large-arc flag when it exceeds half the total.
//
// Intensity is a visual weight in [0.1, 0.9] assigned purely by rank: the
// first entry gets 0.9, decreasing linearly to about 0.1 for the last. It has
// nothing to do with the amounts.
//
// The function is total: with total == 0 every percentage is exactly 0 and
// all spans are empty at the offset angle.
func RenderDistribution(entries []CategoryAmount, total Money) []Slice {
	n := len(entries)
	if n == 0 {
		return nil
	}
	step := 0.8 / float64(max(1, n-1))
	out := make([]Slice, 0, n)
	cumulative := 0.0
	for i, e := range entries {
		share := 0.0
		if total.Cents > 0 {
			share = float64(e.Amount.Cents) / float64(total.Cents)
		}
		start := startAngleOffset + cumulative*360
		cumulative += share
		end := startAngleOffset + cumulative*360
		out = append(out, Slice{
			Name:       e.Name,
			Amount:     e.Amount,
			Percentage: share * 100,
			StartAngle: start,
			EndAngle:   end,
			LargeArc:   share > 0.5,
			Intensity:  0.9 - float64(i)*step,
		})
	}
	return out
}
