package debug

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	rt "rtcircuit/types"
)

// Plot 静态曲线图
type Plot struct {
	*Record
	Width, Height vg.Length // 图像尺寸
	Format        string    // png, svg, pdf ...
}

// NewPlot 创建静态曲线图
func NewPlot(record *Record, format string) *Plot {
	return &Plot{Record: record, Width: 8 * vg.Inch, Height: 4 * vg.Inch, Format: format}
}

// Render 绘制节点电压曲线,有监视历史时追加监视元件电流
func (p *Plot) Render(w io.Writer) error {
	if p.Record == nil || len(p.Time) == 0 {
		return ErrEmptyRecord
	}
	pl := plot.New()
	pl.Title.Text = "Node voltage"
	pl.X.Label.Text = "t (s)"
	pl.Y.Label.Text = "V"
	width := 0
	for _, row := range p.Voltage {
		width = max(width, len(row))
	}
	for n := 0; n < width; n++ {
		xys := make(plotter.XYs, len(p.Time))
		for i, t := range p.Time {
			xys[i].X = t
			if n < len(p.Voltage[i]) {
				xys[i].Y = p.Voltage[i][n]
			}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(n)
		pl.Add(line)
		pl.Legend.Add(rt.NodeName(n), line)
	}
	if len(p.Samples) > 0 {
		xys := make(plotter.XYs, len(p.Samples))
		for i, s := range p.Samples {
			xys[i].X, xys[i].Y = s.T, s.I
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(width)
		line.Dashes = plotutil.Dashes(1)
		pl.Add(line)
		pl.Legend.Add("I(selected)", line)
	}
	format := p.Format
	if format == "" {
		format = "png"
	}
	wt, err := pl.WriterTo(p.Width, p.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
