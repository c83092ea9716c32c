package recovery

import (
	"fmt"
	"github.com/go-echarts/go-echarts/charts"
)

// BuildChart plots matching candidates against observed bits.
func BuildChart(report *Report) *charts.Line {
	lineChart := charts.NewLine()
	lineChart.SetGlobalOptions(
		charts.InitOpts{
			PageTitle: "Identifiability",
			Width:     "100wh",
			Height:    "85vh",
		},
		charts.TitleOpts{
			Title:    "Matching candidates by observed bits",
			Subtitle: fmt.Sprintf("run %s, %d cached bits", report.Id, report.CacheBits),
		},
		charts.ToolboxOpts{Show: true},
		charts.XAxisOpts{Name: "observed bits"},
		charts.YAxisOpts{Name: "candidates"},
	)
	x := make([]int, len(report.Results))
	y := make([]int, len(report.Results))
	for i, result := range report.Results {
		x[i] = result.ObservedBits
		y[i] = result.Matches
	}
	lineChart.AddXAxis(x)
	lineChart.AddYAxis("candidates", y)
	return lineChart
}
