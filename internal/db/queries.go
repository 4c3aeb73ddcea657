package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Leochin1206/GeraApp/internal/models"
)

// DashboardSnapshot is one cached aggregation result.
type DashboardSnapshot struct {
	ID        int64
	Dashboard models.Dashboard
}

const snapshotColumns = `id, payload`

func (db *DB) InsertDashboard(d models.Dashboard) (int64, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return 0, fmt.Errorf("encoding dashboard: %w", err)
	}

	u := d.Utilization
	res, err := db.Exec(
		`INSERT INTO dashboard_snapshots (generated_at, total_generators, in_use, available, availability_rate, skipped_events, payload) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.GeneratedAt.UTC(), u.TotalGenerators, u.InUseCount, u.AvailableCount, u.AvailabilityRate, d.SkippedEvents, string(payload),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetLatestDashboard returns nil, nil when nothing has been cached yet.
func (db *DB) GetLatestDashboard() (*DashboardSnapshot, error) {
	row := db.QueryRow(`SELECT ` + snapshotColumns + ` FROM dashboard_snapshots ORDER BY generated_at DESC, id DESC LIMIT 1`)

	s, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (db *DB) GetDashboards(since time.Time) ([]DashboardSnapshot, error) {
	rows, err := db.Query(`SELECT `+snapshotColumns+` FROM dashboard_snapshots WHERE generated_at >= ? ORDER BY generated_at ASC, id ASC`, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []DashboardSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *s)
	}
	return snapshots, rows.Err()
}

// PruneBefore drops cached dashboards older than cutoff.
func (db *DB) PruneBefore(cutoff time.Time) (int64, error) {
	res, err := db.Exec(`DELETE FROM dashboard_snapshots WHERE generated_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*DashboardSnapshot, error) {
	var s DashboardSnapshot
	var payload string
	if err := row.Scan(&s.ID, &payload); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &s.Dashboard); err != nil {
		return nil, fmt.Errorf("decoding dashboard %d: %w", s.ID, err)
	}
	return &s, nil
}
