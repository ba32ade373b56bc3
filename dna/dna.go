// Implements a deterministic stream of normalized floats,
// read by chunks ("chromosomes") from a sequence of integers
// generated once from a seed.
// The same seed always produces the same values, which
// makes generative drawings repeatable.
package dna

import (
	"math"
	"math/rand"
)

// Default construction parameters
const (
	DefaultLength           = 100
	DefaultChromosomeLength = 5
	DefaultAlphabetSize     = 256
)

// Sequence is a seeded sequence of integers in [0, AlphabetSize),
// consumed by chunks of ChromosomeLength elements.
// The sequence itself is never modified after construction: only
// the cursor moves, and it may be saved and restored with Index and SetIndex.
//
// A Sequence is not safe for concurrent use: the order of the calls
// to Next is part of the output.
type Sequence struct {
	seed             int64
	sequence         []int
	cursor           int
	chromosomeLength int
	alphabetSize     int
}

// New generates the sequence for `seed`. Non positive parameters
// are replaced by the package defaults.
func New(seed int64, length, chromosomeLength, alphabetSize int) *Sequence {
	if length <= 0 {
		length = DefaultLength
	}
	if chromosomeLength <= 0 {
		chromosomeLength = DefaultChromosomeLength
	}
	if alphabetSize <= 0 {
		alphabetSize = DefaultAlphabetSize
	}
	rng := rand.New(rand.NewSource(seed))
	seq := make([]int, length)
	for i := range seq {
		seq[i] = rng.Intn(alphabetSize)
	}
	return &Sequence{
		seed:             seed,
		sequence:         seq,
		chromosomeLength: chromosomeLength,
		alphabetSize:     alphabetSize,
	}
}

// Read interprets `length` elements starting at `index` as the digits
// of a number in base AlphabetSize (least significant first), and returns it
// normalized in [0, 1). Indexes wrap around the sequence.
// The cursor is not modified.
func (s *Sequence) Read(index, length int) float64 {
	n := len(s.sequence)
	base := float64(s.alphabetSize)
	index = wrapIndex(index, n)
	var result float64
	for i := 0; i < length; i++ {
		amino := s.sequence[(index+i)%n]
		result += float64(amino) * math.Pow(base, float64(i))
	}
	result /= math.Pow(base, float64(length))
	if result >= 1 { // rounding with long chromosomes
		result = math.Nextafter(1, 0)
	}
	return result
}

// Next reads the chromosome under the cursor and advances it.
func (s *Sequence) Next() float64 {
	out := s.Read(s.cursor, s.chromosomeLength)
	s.cursor = (s.cursor + s.chromosomeLength) % len(s.sequence)
	return out
}

// Index returns the current cursor.
func (s *Sequence) Index() int { return s.cursor }

// SetIndex moves the cursor to `index`, wrapped in the sequence range.
func (s *Sequence) SetIndex(index int) { s.cursor = wrapIndex(index, len(s.sequence)) }

// Seed returns the seed the sequence was generated from.
func (s *Sequence) Seed() int64 { return s.seed }

// Len is the number of elements, not the number of chromosomes.
func (s *Sequence) Len() int              { return len(s.sequence) }
func (s *Sequence) ChromosomeLength() int { return s.chromosomeLength }
func (s *Sequence) AlphabetSize() int     { return s.alphabetSize }

// At returns the raw element at `i` (wrapped).
func (s *Sequence) At(i int) int { return s.sequence[wrapIndex(i, len(s.sequence))] }

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
