// Package figure plots simulated filter responses.
package figure

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Responses draws one line per observation of responses, an array
// [sample][observation]float64, against time k ts and saves the figure to
// path. The file format follows the extension of path.
func Responses(path string, ts float64, responses [][]float64, labels []string, width, height vg.Length) error {
	if len(responses) == 0 {
		return errors.New("figure: no samples")
	}
	lines := plottify(ts, responses)
	if len(labels) != len(lines) {
		return fmt.Errorf("figure: %d labels for %d observations", len(labels), len(lines))
	}

	p := plot.New()
	p.Title.Text = "Filter response"
	p.X.Label.Text = "t [s]"
	p.Y.Label.Text = "y(t)"

	vs := make([]interface{}, 0, 2*len(lines))
	for index := range lines {
		vs = append(vs, labels[index], lines[index])
	}
	if err := plotutil.AddLines(p, vs...); err != nil {
		return fmt.Errorf("figure: %w", err)
	}

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("figure: save %s: %w", path, err)
	}
	return nil
}

func plottify(ts float64, data [][]float64) []plotter.XYs {
	numberOfSamples := len(data)
	numberOfPlots := len(data[0])

	res := make([]plotter.XYs, numberOfPlots)
	for index := range res {
		pts := make(plotter.XYs, numberOfSamples)
		for i := range pts {
			pts[i].X = float64(i) * ts
			pts[i].Y = data[i][index]
		}
		res[index] = pts
	}
	return res
}
