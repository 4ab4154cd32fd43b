package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/armlab/armsight/internal/analysis"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Report is a persisted analysis report with its run metadata.
type Report struct {
	ID              string
	VideoFilename   string
	Identity        analysis.Identity
	Primary         string
	Technique       analysis.TechniqueResult
	Risks           []analysis.RiskFinding
	Strength        analysis.StrengthProfile
	Recommendations []string
	FramesAnalyzed  int
	Duration        float64
	CreatedAt       time.Time
}

// ReportRepository provides CRUD operations for analysis reports.
type ReportRepository struct {
	db *sql.DB
}

// Reports returns the report repository for this store.
func (s *Store) Reports() *ReportRepository {
	return &ReportRepository{db: s.db}
}

// Create persists one analysis report for a video and returns its new ID.
// Failure reports (Error set) are not persisted.
func (r *ReportRepository) Create(videoFilename string, identity analysis.Identity, report *analysis.AnalysisReport) (string, error) {
	if report.Error != "" {
		return "", fmt.Errorf("refusing to persist failure report: %s", report.Error)
	}

	techniqueData, err := json.Marshal(report.Technique)
	if err != nil {
		return "", fmt.Errorf("encode technique: %w", err)
	}
	riskData, err := json.Marshal(report.Risks)
	if err != nil {
		return "", fmt.Errorf("encode risks: %w", err)
	}
	strengthData, err := json.Marshal(report.Strength)
	if err != nil {
		return "", fmt.Errorf("encode strength: %w", err)
	}
	recommendations, err := json.Marshal(report.Recommendations)
	if err != nil {
		return "", fmt.Errorf("encode recommendations: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.Exec(
		`INSERT INTO reports (id, video_filename, identity, technique_primary,
			technique_data, risk_data, strength_data, recommendations,
			frames_analyzed, duration, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, videoFilename, string(identity), report.Technique.Primary,
		string(techniqueData), string(riskData), string(strengthData),
		string(recommendations), report.FramesAnalyzed, report.Duration,
		time.Now(),
	)
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetByID retrieves a report by its ID.
func (r *ReportRepository) GetByID(id string) (*Report, error) {
	row := r.db.QueryRow(
		`SELECT id, video_filename, identity, technique_primary,
			technique_data, risk_data, strength_data, recommendations,
			frames_analyzed, duration, created_at
		 FROM reports WHERE id = ?`,
		id,
	)

	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return report, nil
}

// List returns all stored reports, newest first.
func (r *ReportRepository) List() ([]*Report, error) {
	rows, err := r.db.Query(
		`SELECT id, video_filename, identity, technique_primary,
			technique_data, risk_data, strength_data, recommendations,
			frames_analyzed, duration, created_at
		 FROM reports ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*Report, error) {
	report := &Report{}
	var identity, techniqueData, riskData, strengthData, recommendations string

	err := row.Scan(
		&report.ID, &report.VideoFilename, &identity, &report.Primary,
		&techniqueData, &riskData, &strengthData, &recommendations,
		&report.FramesAnalyzed, &report.Duration, &report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	report.Identity = analysis.Identity(identity)
	if err := json.Unmarshal([]byte(techniqueData), &report.Technique); err != nil {
		return nil, fmt.Errorf("decode technique: %w", err)
	}
	if err := json.Unmarshal([]byte(riskData), &report.Risks); err != nil {
		return nil, fmt.Errorf("decode risks: %w", err)
	}
	if err := json.Unmarshal([]byte(strengthData), &report.Strength); err != nil {
		return nil, fmt.Errorf("decode strength: %w", err)
	}
	if err := json.Unmarshal([]byte(recommendations), &report.Recommendations); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}

	return report, nil
}
