package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/nathanhack/ldpc/tanner"
)

//RenderFile writes the weight distribution chart of g to the html file at path.
func RenderFile(path, title string, g *tanner.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Render(f, title, g)
}

//Render draws a bar chart with how many rows and how many columns have each weight.
func Render(w io.Writer, title string, g *tanner.Graph) error {
	rows := Histogram(g.RowWeights())
	cols := Histogram(g.ColumnWeights())

	size := len(rows)
	if len(cols) > size {
		size = len(cols)
	}
	xnames := make([]string, size)
	for i := range xnames {
		xnames[i] = fmt.Sprint(i)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: g.Weights().String(),
			Left:     "20%",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true,
			Orient: "vertical",
			Right:  "0",
			Top:    "top",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Weight",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Count",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	bar.SetXAxis(xnames)
	bar.AddSeries("Rows", series(rows, size))
	bar.AddSeries("Columns", series(cols, size))

	return bar.Render(w)
}

//Histogram counts how often each weight occurs; index i holds the count of weight i.
func Histogram(weights []int) []int {
	max := -1
	for _, w := range weights {
		if w > max {
			max = w
		}
	}
	counts := make([]int, max+1)
	for _, w := range weights {
		counts[w]++
	}
	return counts
}

func series(counts []int, size int) []opts.BarData {
	results := make([]opts.BarData, size)
	for i := range results {
		if i < len(counts) {
			results[i] = opts.BarData{Value: counts[i]}
		} else {
			results[i] = opts.BarData{Value: 0}
		}
	}
	return results
}
