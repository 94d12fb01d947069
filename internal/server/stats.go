package server

import (
	"net/http"
	"time"
)

// statsResponse is the JSON payload of /api/stats.
type statsResponse struct {
	Today       int             `json:"today"`
	Total       int             `json:"total"`
	WeeklyTrend []dayCountJSON  `json:"weekly_trend"`
	Hourly      []hourCountJSON `json:"hourly"`
	PeakHour    peakHourJSON    `json:"peak_hour"`
}

type dayCountJSON struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type hourCountJSON struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type peakHourJSON struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// handleStats handles GET requests to /api/stats. All aggregates cover the
// 7-day window ending today.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := time.Now()
	from := now.AddDate(0, 0, -6)

	l := s.config.Ledger

	trend := l.WeeklyTrend(now)
	days := make([]dayCountJSON, len(trend))
	for i, d := range trend {
		days[i] = dayCountJSON{Date: d.Date, Count: d.Count}
	}

	hist := l.HourlyHistogram(from, now)
	hours := make([]hourCountJSON, 24)
	for h := 0; h < 24; h++ {
		hours[h] = hourCountJSON{Hour: h, Count: hist[h]}
	}

	peakHour, peakCount := l.PeakHour(from, now)

	writeJSON(w, statsResponse{
		Today:       l.TodayCount(now),
		Total:       l.Len(),
		WeeklyTrend: days,
		Hourly:      hours,
		PeakHour:    peakHourJSON{Hour: peakHour, Count: peakCount},
	})
}
