// Package facematch implements nearest-neighbor matching of face
// descriptors against the enrolled set.
package facematch

import "math"

const (
	// DescriptorDim is the required length of every enrolled and query
	// descriptor. Vectors of any other length never match.
	DescriptorDim = 128

	// MatchThreshold is the acceptance bound on Euclidean distance.
	// Only candidates strictly below it qualify.
	MatchThreshold = 0.55

	// maxDistance is returned for malformed comparisons; it sits above
	// the threshold so bad input degrades to a non-match.
	maxDistance = 1.0
)

// Candidate is one enrolled identity eligible for matching.
type Candidate struct {
	IdentityID string
	Descriptor []float32
}

// Result is the outcome of a matching scan.
type Result struct {
	IdentityID string
	Distance   float64
	Matched    bool
}

// Distance computes the Euclidean distance between two descriptors.
// Nil or unequal-length inputs yield maxDistance rather than an error.
func Distance(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return maxDistance
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Match scans all candidates and returns the one nearest to query, if any
// sits strictly below MatchThreshold. The scan is a fold with the threshold
// as the initial best, so a candidate at exactly the threshold is never
// selected. An empty candidate set yields a non-match.
func Match(query []float32, candidates []Candidate) Result {
	best := Result{Distance: MatchThreshold}

	for _, c := range candidates {
		d := Distance(query, c.Descriptor)
		if d < best.Distance {
			best = Result{IdentityID: c.IdentityID, Distance: d, Matched: true}
		}
	}

	return best
}
