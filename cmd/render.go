package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/Leochin1206/GeraApp/internal/models"
)

const barWidth = 30

func printMiniBar(w io.Writer, pct float64, width int) {
	filled := int(pct * float64(width) / 100)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	fmt.Fprintf(w, "  [%s] %.0f%%\n", bar, math.Round(pct))
}

func printUtilization(w io.Writer, u models.UtilizationSnapshot) {
	fmt.Fprintf(w, "  Total:        %d\n", u.TotalGenerators)
	fmt.Fprintf(w, "  Disponíveis:  %d\n", u.AvailableCount)
	fmt.Fprintf(w, "  Em uso:       %d\n", u.InUseCount)
	printMiniBar(w, u.AvailabilityRate, barWidth)
}

func printHistogram(w io.Writer, buckets []models.MonthBucket) {
	maxCount := 0
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	if maxCount == 0 {
		maxCount = 1
	}

	for _, b := range buckets {
		barLen := int(float64(b.Count) / float64(maxCount) * float64(barWidth))
		bar := strings.Repeat("█", barLen) + strings.Repeat("░", barWidth-barLen)
		fmt.Fprintf(w, "  %-6s │%s│ %d\n", b.Label, bar, b.Count)
	}
}

func printUpcoming(w io.Writer, events []models.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "  Nenhum evento agendado.")
		return
	}
	for _, e := range events {
		fmt.Fprintf(w, "  %s  %-30s gerador #%d\n", formatDate(e.Date), e.Location, e.GeneratorID)
	}
}

// formatDate shows an ISO date as DD/MM/YYYY, or the raw string when it
// does not parse.
func formatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

func printStaleNotice(w io.Writer, generatedAt time.Time, cause error) {
	fmt.Fprintf(w, "⚠ Backend unavailable (%v).\n", cause)
	fmt.Fprintf(w, "  Showing cached dashboard from %s.\n\n", generatedAt.Local().Format("2006-01-02 15:04"))
}
