package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData is returned when there is nothing finite to plot.
var ErrNoData = errors.New("no finite data to plot")

// Series is one named curve.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// PlotData holds the curves and labels of a line plot
type PlotData struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series

	LogX bool
	LogY bool
}

// ExportDriveIndexChart exports the drive-index breakdown as a bar chart.
// Unknown indices are drawn as empty slots.
func ExportDriveIndexChart(data DriveIndexData, filename string) error {
	if len(data.Bars) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Drive Indices"
	}
	p.Y.Label.Text = "Index (fraction of production)"

	values := make(plotter.Values, len(data.Bars))
	names := make([]string, len(data.Bars))
	for i, b := range data.Bars {
		names[i] = b.Label
		if b.Known && !math.IsNaN(b.Value) && !math.IsInf(b.Value, 0) {
			values[i] = b.Value
		} else {
			names[i] += " (?)"
		}
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	bars.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(bars)
	p.NominalX(names...)

	// Reference at a full energy balance
	unity, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: 1},
		{X: float64(len(data.Bars)) - 0.5, Y: 1},
	})
	if err != nil {
		return err
	}
	unity.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	unity.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(unity)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: float64(len(data.Bars)) - 1, Y: 1.05}},
		Labels: []string{fmt.Sprintf("total = %.4f", data.Total)},
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	return save(p, 6*vg.Inch, 5*vg.Inch, filename)
}

// ExportPressureProfile exports pressure curves, for example the pressure
// history at several radii or the radial profile at several times.
func ExportPressureProfile(data PlotData, filename string) error {
	p, err := linePlot(data)
	if err != nil {
		return err
	}
	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportMoodyChart exports friction factor curves on log-log axes.
func ExportMoodyChart(data PlotData, filename string) error {
	data.LogX, data.LogY = true, true
	if data.Title == "" {
		data.Title = "Moody Chart"
	}
	if data.XLabel == "" {
		data.XLabel = "Reynolds number"
	}
	if data.YLabel == "" {
		data.YLabel = "Darcy friction factor"
	}
	p, err := linePlot(data)
	if err != nil {
		return err
	}
	return save(p, 10*vg.Inch, 6*vg.Inch, filename)
}

// linePlot draws every series as line segments broken at non-finite values,
// with markers on the finite points.
func linePlot(data PlotData) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = data.Title
	p.X.Label.Text = data.XLabel
	p.Y.Label.Text = data.YLabel
	if data.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if data.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	drawn := 0
	for i, s := range data.Series {
		segs := segments(s.X, s.Y, data.LogX, data.LogY)
		if len(segs) == 0 {
			continue
		}
		c := plotutil.Color(i)

		var thumb plot.Thumbnailer
		for _, seg := range segs {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return nil, err
			}
			line.LineStyle.Width = vg.Points(1.5)
			line.LineStyle.Color = c
			p.Add(line)
			thumb = line

			if len(seg) <= 20 {
				points, err := plotter.NewScatter(seg)
				if err != nil {
					return nil, err
				}
				points.GlyphStyle.Color = c
				points.GlyphStyle.Radius = vg.Points(2.5)
				points.GlyphStyle.Shape = draw.CircleGlyph{}
				p.Add(points)
			}
		}
		if s.Name != "" {
			p.Legend.Add(s.Name, thumb)
		}
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNoData
	}
	p.Legend.Top = true

	return p, nil
}

// segments splits a curve at points that cannot be drawn: NaN, infinities
// and, on log axes, non-positive values.
func segments(x, y []float64, logX, logY bool) []plotter.XYs {
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	n := min(len(x), len(y))
	for i := 0; i < n; i++ {
		if drawable(x[i], logX) && drawable(y[i], logY) {
			cur = append(cur, plotter.XY{X: x[i], Y: y[i]})
			continue
		}
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func drawable(v float64, log bool) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return !log || v > 0
}

// save writes the plot in the format given by the file extension, PNG when
// there is none.
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
