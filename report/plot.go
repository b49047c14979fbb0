package report

import (
	"github.com/ryogrid/SamehadaSMJ/errors"
	"github.com/ryogrid/SamehadaSMJ/samehada"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const ErrNothingToPlot = errors.Error("no successful join to plot")

// PlotIOCost saves a bar chart of I/O count per successful join.
// the format is decided by extension of filePath (.png, .svg, ...).
func PlotIOCost(results []*samehada.JoinResult, filePath string) error {
	names := make([]string, 0, len(results))
	values := make(plotter.Values, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		names = append(names, result.Name)
		values = append(values, float64(result.Stats.IOCount))
	}
	if len(values) == 0 {
		return ErrNothingToPlot
	}

	p := plot.New()
	p.Title.Text = "Sort-Merge Join I/O cost"
	p.Y.Label.Text = "I/Os"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	return p.Save(vg.Length(120+80*len(values)), 4*vg.Inch, filePath)
}
