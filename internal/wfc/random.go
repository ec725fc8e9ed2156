package wfc

import "math/rand"

// Chooser picks an index in [0, n). It is the only source of randomness in
// generation; *rand.Rand satisfies it.
type Chooser interface {
	Intn(n int) int
}

// NewRandomChooser returns a seeded pseudo-random Chooser
func NewRandomChooser(seed int64) Chooser {
	return rand.New(rand.NewSource(seed))
}

// SequenceChooser replays a fixed list of choices, wrapping each into range.
// Once the list is exhausted it keeps returning 0.
type SequenceChooser struct {
	choices []int
	next    int
}

// NewSequenceChooser creates a Chooser that replays choices in order
func NewSequenceChooser(choices ...int) *SequenceChooser {
	return &SequenceChooser{choices: choices}
}

// Intn returns the next recorded choice modulo n
func (s *SequenceChooser) Intn(n int) int {
	if s.next >= len(s.choices) {
		return 0
	}
	c := s.choices[s.next] % n
	s.next++
	if c < 0 {
		c += n
	}
	return c
}
