package ledger

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
)

// legacyStats mirrors the JSON layout written by the original tracker:
// a map of ISO date strings to counts plus a flat list of epoch-second
// trigger timestamps.
type legacyStats struct {
	DailyStats map[string]int `json:"daily_stats"`
	Triggers   []float64      `json:"triggers"`
}

// ImportLegacy reads a stats file in the original JSON layout. Malformed
// entries are skipped with a logged warning; a malformed document yields an
// empty ledger. It never fails.
func ImportLegacy(r io.Reader) *Ledger {
	var stats legacyStats
	if err := json.NewDecoder(r).Decode(&stats); err != nil {
		log.Printf("Warning: malformed stats data, starting with an empty ledger: %v", err)
		return New()
	}

	records := make([]Record, 0, len(stats.Triggers))
	for _, epoch := range stats.Triggers {
		if epoch <= 0 {
			log.Printf("Warning: skipping invalid trigger timestamp %v", epoch)
			continue
		}
		sec := int64(epoch)
		nsec := int64((epoch - float64(sec)) * float64(time.Second))
		records = append(records, Record{
			ID:        uuid.NewString(),
			Timestamp: time.Unix(sec, nsec),
		})
	}

	l := FromRecords(records)

	// The original file kept daily counts alongside the trigger list and the
	// two could drift (counts survive trigger pruning). Trust whichever is
	// larger for each valid date.
	for date, count := range stats.DailyStats {
		if _, err := time.Parse(DateFormat, date); err != nil {
			log.Printf("Warning: skipping stats entry with invalid date %q", date)
			continue
		}
		if count < 0 {
			log.Printf("Warning: skipping stats entry with negative count for %s", date)
			continue
		}
		if count > l.daily[date] {
			l.daily[date] = count
		}
	}

	return l
}

// LoadLegacyFile imports a legacy stats file from disk. A missing or
// unreadable file yields an empty ledger with a logged warning.
func LoadLegacyFile(path string) *Ledger {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("Warning: could not open stats file %s: %v", path, err)
		return New()
	}
	defer f.Close()

	return ImportLegacy(f)
}
