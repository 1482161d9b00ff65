package formatter

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/helmcode/codeclarity/pkg/model"
)

const pointsPerBand = 4

// Chart draws the five band ceilings as a staircase with the score as a flat
// line across it. A nil score draws the bands alone.
func Chart(score *int) string {
	var ceilings []float64
	for _, b := range model.Bands() {
		for i := 0; i < pointsPerBand; i++ {
			ceilings = append(ceilings, float64(b.Ceiling()))
		}
	}

	series := [][]float64{ceilings}
	colors := []asciigraph.AnsiColor{asciigraph.Blue}
	legends := []string{"band ceiling"}
	if score != nil {
		line := make([]float64, len(ceilings))
		for i := range line {
			line[i] = float64(*score)
		}
		series = append(series, line)
		colors = append(colors, asciigraph.Red)
		legends = append(legends, fmt.Sprintf("your score: %d", *score))
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(10),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(10),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption("Code Complexity Rating"),
	)
}
