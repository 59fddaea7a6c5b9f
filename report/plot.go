package report

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"q.log/bigm/simplex"
)

// PlotObjective saves a line chart of the objective row's RHS per tableau.
// The image format follows the file extension.
func PlotObjective(history []*simplex.Tableau, filename string) error {
	if len(history) == 0 {
		return errors.New("report: empty tableau history")
	}

	pts := make(plotter.XYs, len(history))
	for k, t := range history {
		pts[k].X = float64(k)
		pts[k].Y = t.Objective().RHS
	}

	p := plot.New()
	p.Title.Text = "Objective value per tableau"
	p.X.Label.Text = "tableau"
	p.Y.Label.Text = "F"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return errors.Wrap(err, "report: plot")
	}
	p.Add(line, points)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "report: save %s", filename)
	}
	return nil
}
