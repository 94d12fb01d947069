package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// handleStatsPage renders the statistics dashboard as an HTML page with two
// bar charts: the 7-day trend and the hourly distribution over the same
// window.
func (s *Server) handleStatsPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := time.Now()
	from := now.AddDate(0, 0, -6)
	l := s.config.Ledger

	trend := l.WeeklyTrend(now)
	trendX := make([]string, len(trend))
	trendY := make([]opts.BarData, len(trend))
	for i, d := range trend {
		trendX[i] = d.Date
		trendY[i] = opts.BarData{Value: d.Count}
	}

	weekly := charts.NewBar()
	weekly.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Strandguard Statistics", Width: "100%", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Pulling Triggers, Last 7 Days",
			Subtitle: fmt.Sprintf("today: %d, total: %d", l.TodayCount(now), l.Len()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	weekly.SetXAxis(trendX).
		AddSeries("triggers", trendY,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	hist := l.HourlyHistogram(from, now)
	hourX := make([]string, 24)
	hourY := make([]opts.BarData, 24)
	for h := 0; h < 24; h++ {
		hourX[h] = fmt.Sprintf("%02d:00", h)
		hourY[h] = opts.BarData{Value: hist[h]}
	}

	peakHour, peakCount := s.config.Ledger.PeakHour(from, now)
	subtitle := "no triggers this week"
	if peakCount > 0 {
		subtitle = fmt.Sprintf("peak hour: %02d:00 (%d triggers)", peakHour, peakCount)
	}

	hourly := charts.NewBar()
	hourly.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "Hourly Distribution", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	hourly.SetXAxis(hourX).AddSeries("triggers", hourY)

	page := components.NewPage()
	page.AddCharts(weekly, hourly)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		http.Error(w, fmt.Sprintf("render error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
