package chronos

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderChart draws total and mean time per function as an HTML line chart.
func RenderChart(records []Record, w io.Writer) error {
	names := make([]string, len(records))
	totals := make([]opts.LineData, len(records))
	means := make([]opts.LineData, len(records))
	for i := range records {
		r := &records[i]
		names[i] = r.Name
		totals[i] = opts.LineData{Name: r.Name, Value: r.Total()}
		means[i] = opts.LineData{Name: r.Name, Value: r.Mean()}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Function Heatmap",
			Subtitle: "Total and mean time per function",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Function Names",
			AxisLabel: &opts.AxisLabel{Rotate: 30},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Time (s)"}),
	)
	line.SetXAxis(names).
		AddSeries("Total Time", totals, charts.WithLineStyleOpts(opts.LineStyle{Color: "blue"})).
		AddSeries("Mean Time", means, charts.WithLineStyleOpts(opts.LineStyle{Color: "red"}))
	return line.Render(w)
}
