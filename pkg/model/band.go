package model

// Band is one of the five fixed complexity categories.
type Band int

const (
	VerySimple Band = iota
	Simple
	Moderate
	Complex
	VeryComplex
)

var bandLabels = [...]string{"Very Simple", "Simple", "Moderate", "Complex", "Very Complex"}

// bandCeilings holds the inclusive upper score of each band.
var bandCeilings = [...]int{2, 4, 6, 8, 10}

// Bands returns all bands from simplest to most complex.
func Bands() []Band {
	return []Band{VerySimple, Simple, Moderate, Complex, VeryComplex}
}

// BandFor maps a score to its band. Scores below the table land in the first
// band and scores above it in the last.
func BandFor(score int) Band {
	for i, ceiling := range bandCeilings[:len(bandCeilings)-1] {
		if score <= ceiling {
			return Band(i)
		}
	}
	return VeryComplex
}

func (b Band) String() string {
	if b < VerySimple || b > VeryComplex {
		return "Unknown"
	}
	return bandLabels[b]
}

// Ceiling is the highest score that still falls in the band.
func (b Band) Ceiling() int {
	if b < VerySimple || b > VeryComplex {
		return 0
	}
	return bandCeilings[b]
}

// Floor is the lowest score of the band on the 1-10 scale.
func (b Band) Floor() int {
	if b <= VerySimple {
		return 1
	}
	return b.Ceiling() - 1
}
