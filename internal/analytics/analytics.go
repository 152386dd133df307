package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"dotpi/internal/storage"
)

// DailyStats summarizes the chat exchanges of one day.
type DailyStats struct {
	Date          string         `json:"date"`
	TotalMessages int            `json:"total_messages"`
	ByMood        map[string]int `json:"by_mood"`
	ByTone        map[string]int `json:"by_tone"`
	BySource      map[string]int `json:"by_source"`
	Fallbacks     int            `json:"fallbacks"`
}

// AnalyzeDailyLogs counts the interactions that fall on targetDate's day,
// in targetDate's location.
func AnalyzeDailyLogs(items []storage.Interaction, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	stats := &DailyStats{
		Date:     startOfDay.Format("2006-01-02"),
		ByMood:   make(map[string]int),
		ByTone:   make(map[string]int),
		BySource: make(map[string]int),
	}

	for _, in := range items {
		if in.Timestamp.Before(startOfDay) || !in.Timestamp.Before(endOfDay) {
			continue
		}
		// records without a user message are not exchanges
		if in.UserMessage == "" {
			continue
		}
		stats.TotalMessages++
		if in.DetectedMood != "" {
			stats.ByMood[in.DetectedMood]++
		}
		if in.ToneUsed != "" {
			stats.ByTone[in.ToneUsed]++
		}
		if in.Source != "" {
			stats.BySource[string(in.Source)]++
		}
		if in.Fallback {
			stats.Fallbacks++
		}
	}
	return stats
}

// GenerateReportSummary renders the stats as plain text for the daily report.
func (ds *DailyStats) GenerateReportSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DotPi activity for %s:\n\n", ds.Date)
	fmt.Fprintf(&b, "- Messages: %d\n", ds.TotalMessages)
	fmt.Fprintf(&b, "- Local fallbacks after model errors: %d\n", ds.Fallbacks)
	writeCounts(&b, "Moods", ds.ByMood)
	writeCounts(&b, "Tones", ds.ByTone)
	writeCounts(&b, "Reply sources", ds.BySource)
	return b.String()
}

func writeCounts(b *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %d\n", k, counts[k])
	}
}

func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
