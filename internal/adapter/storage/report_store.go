// internal/adapter/storage/report_store.go

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"trendlens/internal/domain/trend"
)

// ReportStore persists emitted trend reports as audit rows. One row per
// report; re-saving the same id overwrites the row.
type ReportStore struct {
	db *pgxpool.Pool
}

var _ trend.ReportStore = (*ReportStore)(nil)

// NewReportStore creates a new report store.
func NewReportStore(db *pgxpool.Pool) *ReportStore {
	return &ReportStore{
		db: db,
	}
}

// SaveReport saves a report to storage.
func (s *ReportStore) SaveReport(ctx context.Context, r trend.Report) error {
	query := `
		INSERT INTO trend_reports (
			id, description, keywords, subreddits,
			retained, excluded, skipped_ids, degraded, generated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9
		)
		ON CONFLICT (id) DO UPDATE
		SET
			description = $2,
			keywords = $3,
			subreddits = $4,
			retained = $5,
			excluded = $6,
			skipped_ids = $7,
			degraded = $8,
			generated_at = $9
	`

	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now().UTC()
	}

	retainedJSON, err := json.Marshal(r.Retained)
	if err != nil {
		return fmt.Errorf("error marshaling retained posts: %w", err)
	}

	excludedJSON, err := json.Marshal(r.Excluded)
	if err != nil {
		return fmt.Errorf("error marshaling excluded posts: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		query,
		r.ID,
		r.Description,
		r.Keywords,
		r.Subreddits,
		retainedJSON,
		excludedJSON,
		r.SkippedIDs,
		r.Degraded,
		r.GeneratedAt,
	)

	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetReport retrieves a report by ID.
func (s *ReportStore) GetReport(ctx context.Context, id string) (*trend.Report, error) {
	query := `
		SELECT
			id, description, keywords, subreddits,
			retained, excluded, skipped_ids, degraded, generated_at
		FROM trend_reports
		WHERE id = $1
	`

	var r trend.Report
	var retainedJSON, excludedJSON []byte

	err := s.db.QueryRow(ctx, query, id).Scan(
		&r.ID,
		&r.Description,
		&r.Keywords,
		&r.Subreddits,
		&retainedJSON,
		&excludedJSON,
		&r.SkippedIDs,
		&r.Degraded,
		&r.GeneratedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, trend.ErrNotFound
		}
		return nil, fmt.Errorf("error querying report: %w", err)
	}

	if err := json.Unmarshal(retainedJSON, &r.Retained); err != nil {
		return nil, fmt.Errorf("error unmarshaling retained posts: %w", err)
	}

	if err := json.Unmarshal(excludedJSON, &r.Excluded); err != nil {
		return nil, fmt.Errorf("error unmarshaling excluded posts: %w", err)
	}

	return &r, nil
}
