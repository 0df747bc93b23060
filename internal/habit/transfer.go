package habit

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gajendran57/GoalGrid/internal/api"
)

// TransferBackend is the slice of the API client used for import/export.
type TransferBackend interface {
	ExportHabits(ctx context.Context, format string) (*api.Export, error)
	ImportHabits(ctx context.Context, req api.ImportRequest) (*api.ImportResult, error)
}

// Transfer handles habit archive import and export.
type Transfer struct {
	backend   TransferBackend
	refresher Refresher
	logger    *zap.Logger
}

func NewTransfer(backend TransferBackend, refresher Refresher, logger *zap.Logger) *Transfer {
	return &Transfer{
		backend:   backend,
		refresher: refresher,
		logger:    logger,
	}
}

// Export downloads the user's habits in the requested format.
func (t *Transfer) Export(ctx context.Context, format string) (*api.Export, error) {
	return t.backend.ExportHabits(ctx, format)
}

// Import restores habits and records from an archive, then refreshes so
// the restored habits appear on the dashboard.
func (t *Transfer) Import(ctx context.Context, req api.ImportRequest) (*api.ImportResult, error) {
	result, err := t.backend.ImportHabits(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := t.refresher.Refresh(ctx); err != nil {
		t.logger.Warn("Post-import refresh failed", zap.Error(err))
	}

	t.logger.Info("Habits imported",
		zap.Int("habits", result.ImportedHabits),
		zap.Int("records", result.ImportedRecords),
	)
	return result, nil
}
