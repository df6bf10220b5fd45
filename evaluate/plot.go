package evaluate

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotROC saves the ROC curve with the given points as an image at path,
// its format chosen by the extension of path
func PlotROC(points []Point, path string) error {
	p := plot.New()
	p.Title.Text = "ROC"
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(points))
	for i, pt := range points {
		pts[i].X = pt.FPR
		pts[i].Y = pt.TPR
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plotting ROC curve: %v", err)
	}
	l.Color = color.RGBA{B: 255, A: 255}
	l.LineStyle.Width = vg.Points(2)
	p.Add(l)

	diagonal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return fmt.Errorf("plotting ROC curve: %v", err)
	}
	diagonal.Color = color.Gray{Y: 128}
	diagonal.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(diagonal)

	if err := p.Save(5*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving ROC plot to %s: %v", path, err)
	}
	return nil
}

// PlotLearningCurve saves the mean, minimum and maximum accuracies of the
// points of a learning curve as an image at path
func PlotLearningCurve(points []CurvePoint, path string) error {
	p := plot.New()
	p.Title.Text = "Learning curve"
	p.X.Label.Text = "Training set size (%)"
	p.Y.Label.Text = "Test accuracy"
	p.Add(plotter.NewGrid())

	for _, serie := range []struct {
		name  string
		color color.Color
		value func(CurvePoint) float64
	}{
		{"mean", color.RGBA{B: 255, A: 255}, func(cp CurvePoint) float64 { return cp.Mean }},
		{"min", color.RGBA{R: 255, A: 255}, func(cp CurvePoint) float64 { return cp.Min }},
		{"max", color.RGBA{G: 160, A: 255}, func(cp CurvePoint) float64 { return cp.Max }},
	} {
		pts := make(plotter.XYs, len(points))
		for i, cp := range points {
			pts[i].X = float64(cp.Percent)
			pts[i].Y = serie.value(cp)
		}
		l, s, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("plotting %s accuracy: %v", serie.name, err)
		}
		l.Color = serie.color
		s.Color = serie.color
		p.Add(l, s)
		p.Legend.Add(serie.name, l, s)
	}
	p.Legend.Top = false
	p.Legend.Left = false

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving learning curve plot to %s: %v", path, err)
	}
	return nil
}
