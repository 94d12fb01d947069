// Package ledger records confirmed trigger events and aggregates them into
// daily counts, hourly histograms and weekly trends.
package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DateFormat is the key format for daily counts.
const DateFormat = "2006-01-02"

// Record is one confirmed trigger. Immutable once created.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// Date returns the record's calendar date key.
func (r Record) Date() string {
	return r.Timestamp.Format(DateFormat)
}

// DayCount pairs a calendar date with its trigger count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Ledger is the append-only trigger history for one session. Records are
// kept in chronological insertion order; daily counts are maintained so that
// after any mutation the count for a date equals the number of records on
// that date. Safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	records []Record
	daily   map[string]int
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{daily: make(map[string]int)}
}

// FromRecords creates a Ledger rehydrated from persisted records, rebuilding
// the daily counts. Records are sorted chronologically.
func FromRecords(records []Record) *Ledger {
	l := New()
	l.records = append(l.records, records...)
	sort.Slice(l.records, func(i, j int) bool {
		return l.records[i].Timestamp.Before(l.records[j].Timestamp)
	})
	for _, r := range l.records {
		l.daily[r.Date()]++
	}
	return l
}

// RecordTrigger appends a trigger at the given time and returns the new
// record. It never fails; an absent date key is created with count 1.
func (l *Ledger) RecordTrigger(ts time.Time) Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := Record{ID: uuid.NewString(), Timestamp: ts}
	l.records = append(l.records, rec)
	l.daily[rec.Date()]++
	return rec
}

// DailyCount returns the number of triggers recorded on the given date
// (formatted as DateFormat). Unknown dates count zero.
func (l *Ledger) DailyCount(date string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.daily[date]
}

// TodayCount returns the trigger count for the date of now.
func (l *Ledger) TodayCount(now time.Time) int {
	return l.DailyCount(now.Format(DateFormat))
}

// Len returns the total number of records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Records returns a copy of all records in chronological order.
func (l *Ledger) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// HourlyHistogram buckets records whose date falls within [from, to]
// (inclusive, by calendar date) by hour of day. All 24 buckets are present.
func (l *Ledger) HourlyHistogram(from, to time.Time) map[int]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	hist := make(map[int]int, 24)
	for h := 0; h < 24; h++ {
		hist[h] = 0
	}

	fromKey := from.Format(DateFormat)
	toKey := to.Format(DateFormat)
	for _, r := range l.records {
		d := r.Date()
		if d < fromKey || d > toKey {
			continue
		}
		hist[r.Timestamp.Hour()]++
	}
	return hist
}

// PeakHour returns the hour with the most triggers in [from, to] and its
// count. Ties break toward the earliest hour. A range with no triggers
// returns (0, 0).
func (l *Ledger) PeakHour(from, to time.Time) (hour, count int) {
	hist := l.HourlyHistogram(from, to)
	for h := 0; h < 24; h++ {
		if hist[h] > count {
			hour = h
			count = hist[h]
		}
	}
	return hour, count
}

// WeeklyTrend returns the trigger counts for the 7 days ending at end,
// ordered oldest to newest. Days without triggers appear with count 0.
func (l *Ledger) WeeklyTrend(end time.Time) []DayCount {
	l.mu.Lock()
	defer l.mu.Unlock()

	trend := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		date := end.AddDate(0, 0, -i).Format(DateFormat)
		trend = append(trend, DayCount{Date: date, Count: l.daily[date]})
	}
	return trend
}
