package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store persists run metadata and per-symbol score sets to Postgres, giving
// downstream collaborators a queryable run history without coupling the core
// to their schema (SPEC_FULL §4.7). A nil *Store disables persistence.
type Store struct {
	db *sqlx.DB
}

// OpenStore opens a Postgres connection pool via lib/pq.
func OpenStore(dataSourceName string) (*Store, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: open store: %w", err)
	}
	return &Store{db: db}, nil
}

// Migrate creates the run-history table if absent. Intentionally minimal:
// the core owns only what it needs to answer "what ran, and how did each
// symbol score", not a general reporting schema.
func (s *Store) Migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS dma_runs (
	run_id               TEXT PRIMARY KEY,
	analysis_date        DATE NOT NULL,
	generated_at         TIMESTAMPTZ NOT NULL,
	version              TEXT NOT NULL,
	instruments_analyzed INT NOT NULL,
	market_condition     TEXT NOT NULL,
	scores               JSONB NOT NULL
);`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

type scoreRow struct {
	Ticker     string  `json:"ticker"`
	Composite  float64 `json:"composite"`
	Trend      float64 `json:"trend"`
	Momentum   float64 `json:"momentum"`
	Volatility float64 `json:"volatility"`
	RelStr     float64 `json:"relative_strength"`
}

// SaveRun persists one completed run's metadata and score sets.
func (s *Store) SaveRun(ctx context.Context, r *AnalysisResult) error {
	if s == nil || s.db == nil {
		return nil
	}

	rows := make([]scoreRow, 0, len(r.Instruments))
	for ticker, rec := range r.Instruments {
		rows = append(rows, scoreRow{
			Ticker: ticker, Composite: rec.Scores.Composite, Trend: rec.Scores.Trend,
			Momentum: rec.Scores.Momentum, Volatility: rec.Scores.Volatility, RelStr: rec.Scores.RelativeStrength,
		})
	}
	scoresJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("orchestrator: marshal scores: %w", err)
	}

	const insert = `
INSERT INTO dma_runs (run_id, analysis_date, generated_at, version, instruments_analyzed, market_condition, scores)
VALUES (:run_id, :analysis_date, :generated_at, :version, :instruments_analyzed, :market_condition, :scores)
ON CONFLICT (run_id) DO NOTHING`

	_, err = s.db.NamedExecContext(ctx, insert, map[string]interface{}{
		"run_id":               r.RunID,
		"analysis_date":        r.Metadata.AnalysisDate,
		"generated_at":         r.Metadata.GeneratedAt,
		"version":              r.Metadata.Version,
		"instruments_analyzed": r.Metadata.InstrumentsAnalyzed,
		"market_condition":     string(r.MarketRegime.MarketCondition),
		"scores":               scoresJSON,
	})
	if err != nil {
		return fmt.Errorf("orchestrator: save run %s: %w", r.RunID, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
