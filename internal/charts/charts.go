// Package charts renders deck statistics as interactive HTML charts for
// the admin dashboard.
package charts

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/manacart/manacart/internal/deck"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title    string
	Subtitle string
	Width    string // e.g., "900px"
	Height   string // e.g., "500px"
	Theme    string
	Colors   []string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  "900px",
		Height: "500px",
		Theme:  "light",
		Colors: []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE"},
	}
}

// RenderManaCurve writes an interactive bar chart of a deck's mana curve.
func RenderManaCurve(stats *deck.Statistics, config ChartConfig, w io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithColorsOpts(opts.Colors{config.Colors[0]}),
	)

	labels, values := curveSeries(stats.ManaCurve)
	bar.SetXAxis(labels).
		AddSeries("Cards", values).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render mana curve chart: %w", err)
	}
	return nil
}

// RenderColorBreakdown writes a pie chart of a deck's color distribution.
func RenderColorBreakdown(stats *deck.Statistics, config ChartConfig, w io.Writer) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	colors := make([]string, 0, len(stats.ColorCount))
	for color := range stats.ColorCount {
		colors = append(colors, color)
	}
	sort.Strings(colors)

	items := make([]opts.PieData, 0, len(colors))
	for _, color := range colors {
		items = append(items, opts.PieData{Name: color, Value: stats.ColorCount[color]})
	}
	pie.AddSeries("Colors", items)

	if err := pie.Render(w); err != nil {
		return fmt.Errorf("render color chart: %w", err)
	}
	return nil
}

// curveSeries lays the curve buckets out from zero through the overflow
// bucket so empty buckets still show.
func curveSeries(curve map[int]int) ([]string, []opts.BarData) {
	labels := make([]string, 0, deck.CurveOverflow+1)
	values := make([]opts.BarData, 0, deck.CurveOverflow+1)
	for mv := 0; mv <= deck.CurveOverflow; mv++ {
		label := fmt.Sprintf("%d", mv)
		if mv == deck.CurveOverflow {
			label = fmt.Sprintf("%d+", mv)
		}
		labels = append(labels, label)
		values = append(values, opts.BarData{Value: curve[mv]})
	}
	return labels, values
}
