package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/marketlab/dma/internal/regime"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return &Store{db: sqlx.NewDb(db, "postgres")}, mock
}

func TestStore_SaveRun_NilStoreIsSafe(t *testing.T) {
	var s *Store
	err := s.SaveRun(context.Background(), &AnalysisResult{})
	require.NoError(t, err)
}

func TestStore_SaveRun_ExecutesInsert(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO dma_runs").WillReturnResult(sqlmock.NewResult(1, 1))

	result := &AnalysisResult{
		RunID: "run-1",
		Metadata: Metadata{
			AnalysisDate: time.Now(), GeneratedAt: time.Now(), Version: "1.0.0", InstrumentsAnalyzed: 1,
		},
		MarketRegime: regime.Snapshot{MarketCondition: regime.ConditionBullish},
		Instruments: map[string]InstrumentRecord{
			"AAPL": {},
		},
	}

	err := s.SaveRun(context.Background(), result)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
