package quota

import "math/rand/v2"

// Default spacing between consecutive sends of a sequence run. Uniformly
// jittered so outbound traffic does not show a burst pattern to receiving
// mail systems.
const (
	DefaultPacingMinMs = 3000
	DefaultPacingMaxMs = 12000
)

// RandomDelay returns a uniform random delay in milliseconds within
// [minMs, maxMs]. A degenerate range collapses to minMs.
func RandomDelay(minMs, maxMs int) int {
	if maxMs <= minMs {
		return minMs
	}
	return minMs + rand.IntN(maxMs-minMs+1)
}
