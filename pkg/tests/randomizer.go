package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	IntN        func(n int) int
	Bool        func() bool
	DigitString func(length int) string
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().Unix())) //nolint:gosec // for tests

	digitString := func(length int) string {
		b := make([]byte, length)
		for i := range b {
			b[i] = byte('0' + random.Intn(10)) //nolint:mnd // skip
		}

		return string(b)
	}

	return Randomizer{
		IntN:        random.Intn,
		Bool:        func() bool { return random.Intn(2) == 0 }, //nolint:mnd // skip
		DigitString: digitString,
	}
}
