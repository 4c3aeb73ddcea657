package models

import "time"

// Generator mirrors the backend's gerador schema. Photo is an optional
// reference to an image; it carries no description field.
type Generator struct {
	ID    int     `json:"id"`
	Name  string  `json:"nome"`
	Photo *string `json:"foto,omitempty"`
}

// Event is a booking of one generator on a calendar date. Date is kept as the
// raw ISO string the backend sends (YYYY-MM-DD, no timezone).
type Event struct {
	ID          int     `json:"id"`
	Location    string  `json:"local"`
	Description string  `json:"descricao"`
	Date        string  `json:"data"`
	Operator    string  `json:"operador"`
	Responsible string  `json:"responsavel"`
	Phone       *string `json:"fone_resp"`
	GeneratorID int     `json:"id_gerador"`
}

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email,omitempty"`
}

type MonthBucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ChartPoint is the shape a bar chart renderer consumes.
type ChartPoint struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type UtilizationSnapshot struct {
	TotalGenerators  int     `json:"total_generators"`
	InUseCount       int     `json:"in_use"`
	AvailableCount   int     `json:"available"`
	AvailabilityRate float64 `json:"availability_rate"`
}

type Dashboard struct {
	GeneratedAt   time.Time           `json:"generated_at"`
	Histogram     []MonthBucket       `json:"histogram"`
	Upcoming      []Event             `json:"upcoming"`
	Utilization   UtilizationSnapshot `json:"utilization"`
	SkippedEvents int                 `json:"skipped_events"`
}
