package web

import (
	"fmt"
	"html"
	"strings"

	"github.com/Leochin1206/GeraApp/internal/models"
)

const noDataSVG = `<svg viewBox="0 0 800 400" xmlns="http://www.w3.org/2000/svg"><text x='400' y='200' text-anchor='middle' fill='#71767b'>No data available</text></svg>`

// ChartSVG renders the monthly event counts as a bar chart.
func ChartSVG(points []models.ChartPoint) string {
	if len(points) == 0 {
		return noDataSVG
	}

	width := 800.0
	height := 400.0
	padding := 60.0
	chartWidth := width - 2*padding
	chartHeight := height - 2*padding

	maxVal := 1
	for _, p := range points {
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}

	slot := chartWidth / float64(len(points))
	barWidth := slot * 0.5

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<svg viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">`, width, height))
	svg.WriteString(`<rect width="100%" height="100%" fill="#FFFFFF"/>`)

	svg.WriteString(fmt.Sprintf(`<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#374151" stroke-width="1"/>`, padding, padding, padding, height-padding))
	svg.WriteString(fmt.Sprintf(`<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#374151" stroke-width="1"/>`, padding, height-padding, width-padding, height-padding))

	svg.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" fill="#000000" font-size="14" font-weight="bold">Eventos - Últimos 6 Meses</text>`, padding, padding-25))

	for i, p := range points {
		barHeight := float64(p.Value) / float64(maxVal) * chartHeight
		x := padding + float64(i)*slot + (slot-barWidth)/2
		y := height - padding - barHeight

		svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="#EFB322"/>`, x, y, barWidth, barHeight))
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#374151" font-size="12" text-anchor="middle">%d</text>`, x+barWidth/2, y-6, p.Value))
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.0f" fill="#71767b" font-size="11" text-anchor="middle">%s</text>`, x+barWidth/2, height-padding+20, html.EscapeString(p.Label)))
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}
