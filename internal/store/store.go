package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kinetic-data/motion.report/internal/report"
	"github.com/kinetic-data/motion.report/internal/risk"
)

// ErrNotFound is returned when no report exists under the requested id.
var ErrNotFound = errors.New("report not found")

// Store persists analysis reports in a sqlite database.
type Store struct {
	*sql.DB
}

// migrations holds the embedded schema migrations so a Store can be opened
// against a fresh path without any files on disk.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Open opens (creating if necessary) the report database at path and
// applies any pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report database: %w", err)
	}

	s := &Store{db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// migrateUp brings the schema to the latest embedded migration version.
func (s *Store) migrateUp() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(s.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	// Note: we don't close m because it would close the underlying DB connection.
	m.Log = &migrateLogger{}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	return nil
}

// migrateLogger implements migrate.Logger interface
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}

// SaveReport persists an envelope. The summary columns are denormalized
// from the report so listings can be served without touching payloads.
func (s *Store) SaveReport(env report.Envelope) error {
	if env.Report == nil {
		return errors.New("cannot save envelope with nil report")
	}

	payload, err := json.Marshal(env.Report)
	if err != nil {
		return fmt.Errorf("failed to encode report payload: %w", err)
	}

	query := `
		INSERT INTO reports (
			id, created_unix_nanos, source, total_frames, detected_frames,
			duration_seconds, overall_score, grade, risk_level, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	sum := env.Report.Summary
	_, err = s.Exec(query,
		env.Meta.ID.String(),
		env.Meta.CreatedAt.UnixNano(),
		env.Meta.Source,
		sum.TotalFrames,
		env.Meta.DetectedFrames,
		sum.DurationSeconds,
		sum.OverallScore,
		sum.Grade,
		string(env.Report.RiskAssessment.OverallRiskLevel),
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	return nil
}

// GetReport loads a stored report by id, payload included.
func (s *Store) GetReport(id uuid.UUID) (report.Envelope, error) {
	query := `
		SELECT created_unix_nanos, source, detected_frames, payload
		FROM reports
		WHERE id = ?
	`

	var (
		createdNanos   int64
		source         string
		detectedFrames int
		payload        []byte
	)
	err := s.QueryRow(query, id.String()).Scan(&createdNanos, &source, &detectedFrames, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Envelope{}, ErrNotFound
	}
	if err != nil {
		return report.Envelope{}, fmt.Errorf("failed to query report %s: %w", id, err)
	}

	env := report.Envelope{
		Meta: report.Meta{
			ID:             id,
			CreatedAt:      time.Unix(0, createdNanos).UTC(),
			Source:         source,
			DetectedFrames: detectedFrames,
		},
		Report: &report.Report{},
	}
	if err := json.Unmarshal(payload, env.Report); err != nil {
		return report.Envelope{}, fmt.Errorf("failed to decode payload for report %s: %w", id, err)
	}

	return env, nil
}

// ReportRow is one listing entry: the denormalized summary columns of a
// stored report, without the payload.
type ReportRow struct {
	ID              uuid.UUID  `json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	Source          string     `json:"source"`
	TotalFrames     int        `json:"total_frames"`
	DetectedFrames  int        `json:"detected_frames"`
	DurationSeconds float64    `json:"duration_seconds"`
	OverallScore    float64    `json:"overall_score"`
	Grade           string     `json:"grade"`
	RiskLevel       risk.Level `json:"risk_level"`
}

// ListReports returns stored reports newest first. A limit of zero or
// less returns every row.
func (s *Store) ListReports(limit int) ([]ReportRow, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT id, created_unix_nanos, source, total_frames, detected_frames,
			duration_seconds, overall_score, grade, risk_level
		FROM reports
		ORDER BY created_unix_nanos DESC
		LIMIT ?
	`

	rows, err := s.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var list []ReportRow
	for rows.Next() {
		var (
			row          ReportRow
			rawID        string
			createdNanos int64
		)
		err := rows.Scan(&rawID, &createdNanos, &row.Source, &row.TotalFrames, &row.DetectedFrames,
			&row.DurationSeconds, &row.OverallScore, &row.Grade, &row.RiskLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		if row.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("failed to parse report id %q: %w", rawID, err)
		}
		row.CreatedAt = time.Unix(0, createdNanos).UTC()
		list = append(list, row)
	}

	return list, rows.Err()
}

// DeleteReport removes a stored report. Deleting an id that does not
// exist returns ErrNotFound.
func (s *Store) DeleteReport(id uuid.UUID) error {
	res, err := s.Exec(`DELETE FROM reports WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete report %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
