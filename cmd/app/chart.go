package main

import (
	"github.com/0x0FACED/go-dcel/pkg/voronoi"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/golang/geo/r2"
)

func prepareScatter(scatter *charts.Scatter) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "620px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Voronoi diagram (incremental)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "x",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "y",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// voronoiToEcharts draws the sites as a scatter and overlays one line per
// diagram edge. Border edges get their own series.
func voronoiToEcharts(sites []r2.Point, diagram *voronoi.Diagram) *charts.Scatter {
	scatter := charts.NewScatter()

	points := make([]opts.ScatterData, 0, len(sites))
	for _, site := range sites {
		points = append(points, opts.ScatterData{
			Value: []float64{site.X, site.Y},
		})
	}

	prepareScatter(scatter)

	scatter.AddSeries("Sites", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	for _, edge := range diagram.Edges {
		name, color := "Edges", "#5470c6"
		if edge.IsBorder() {
			name, color = "Bounds", "#909090"
		}

		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
		)

		line.AddSeries(name, []opts.LineData{
			{Value: []float64{edge.Va.X, edge.Va.Y}},
			{Value: []float64{edge.Vb.X, edge.Vb.Y}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
				Color: color,
			}),
		)

		scatter.Overlap(line)
	}

	return scatter
}
