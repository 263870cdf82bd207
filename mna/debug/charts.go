package debug

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	rt "rtcircuit/types"
)

// ErrEmptyRecord 没有可绘制的数据
var ErrEmptyRecord = errors.New("debug: record is empty")

// Charts 曲线绘制
type Charts struct {
	*Record
}

// newLine 带统一样式的曲线图
func newLine(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      50,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	return line
}

// series 按列填充多条曲线,rows[帧][列]
func series(line *charts.Line, rows [][]float64, name func(int) string) {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	items := make([][]opts.LineData, width)
	multi := make([]charts.SingleSeries, width)
	for i := range items {
		items[i] = make([]opts.LineData, len(rows))
		multi[i] = charts.SingleSeries{
			Name: name(i),
			Data: items[i],
			Type: types.ChartLine,
		}
		multi[i].InitSeriesDefaultOpts(line.BaseConfiguration)
	}
	for i, row := range rows {
		for x, v := range row {
			items[x][i].Value = v
		}
	}
	line.MultiSeries = multi
}

// axis 时间轴标签
func axis(time []float64) []string {
	labels := make([]string, len(time))
	for i, t := range time {
		labels[i] = strconv.FormatFloat(t, 'f', 3, 64)
	}
	return labels
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	if c.Record == nil || len(c.Time) == 0 {
		return ErrEmptyRecord
	}
	// 电路连接图
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "电路节点信息",
			Subtitle: "电路连接节点网络图",
		}),
	)
	graph.SetSeriesOptions(
		charts.WithEmphasisOpts(opts.Emphasis{
			Label: &opts.Label{
				Show:     opts.Bool(true),
				Color:    "black",
				Position: "left",
			},
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Curveness: 0.3,
		}),
	)
	graphNodes := make([]opts.GraphNode, 0, len(c.Elements)+len(c.Nodes))
	for _, n := range c.Elements {
		graphNodes = append(graphNodes, opts.GraphNode{
			Name:     n,
			Category: 0,
			Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
		})
	}
	graphLink := make([]opts.GraphLink, 0)
	for i, pins := range c.Nodes {
		node := opts.GraphNode{
			Name:     rt.NodeName(i),
			Category: 1,
			Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
		}
		if i == rt.ReferenceNodeID {
			node.ItemStyle = &opts.ItemStyle{Color: "#000000de"}
		}
		graphNodes = append(graphNodes, node)
		for _, y := range pins {
			graphLink = append(graphLink, opts.GraphLink{
				Source: c.Elements[y[0]],
				Target: node.Name,
				Value:  float32(y[1]),
			})
		}
	}
	graph.AddSeries("电路列表", graphNodes, graphLink,
		charts.WithGraphChartOpts(opts.GraphChart{
			Categories: []*opts.GraphCategory{
				{Name: "元件", ItemStyle: &opts.ItemStyle{Color: "#c71979b7"}},
				{Name: "节点", ItemStyle: &opts.ItemStyle{Color: "#1987c7b7"}},
			},
			Roam:               opts.Bool(true),
			Force:              &opts.GraphForce{Repulsion: 80},
			EdgeLabel:          &opts.EdgeLabel{Show: opts.Bool(true)},
			FocusNodeAdjacency: opts.Bool(true),
		}))
	// 电压信息
	lineV := newLine("电压曲线", "电路节点电压随时间变化曲线")
	lineV.SetXAxis(axis(c.Time))
	series(lineV, c.Voltage, rt.NodeName)
	// 电流信息
	lineA := newLine("电流曲线", "元件电流随时间变化曲线")
	lineA.SetXAxis(axis(c.Time))
	series(lineA, c.Current, func(i int) string {
		if i < len(c.Elements) {
			return c.Elements[i]
		}
		return strconv.Itoa(i)
	})
	// 功率信息
	lineP := newLine("功率曲线", "电路总功率随时间变化曲线")
	lineP.SetXAxis(axis(c.Time))
	power := make([][]float64, len(c.Power))
	for i, p := range c.Power {
		power[i] = []float64{p}
	}
	series(lineP, power, func(int) string { return "P" })
	page := components.NewPage()
	page.AddCharts(graph, lineV, lineA, lineP)
	// 监视元件
	if len(c.Samples) > 0 {
		lineS := newLine("监视曲线", "监视元件电压电流")
		ts := make([]float64, len(c.Samples))
		rows := make([][]float64, len(c.Samples))
		for i, s := range c.Samples {
			ts[i] = s.T
			rows[i] = []float64{s.V, s.I}
		}
		lineS.SetXAxis(axis(ts))
		series(lineS, rows, func(i int) string { return [...]string{"V", "I"}[i] })
		page.AddCharts(lineS)
	}
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
		if errors.Is(err, ErrEmptyRecord) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		}
	}
}
