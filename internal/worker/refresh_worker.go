package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maskmap-service/internal/usecase"
)

// RefreshWorker periodically re-fetches the pharmacy list so mask stock stays
// current, and the area hierarchy on a longer multiple of the interval. A
// failed tick is logged; the next tick is the retry.
type RefreshWorker struct {
	*BaseWorker
	areaUC          *usecase.AreaUseCase
	pharmacyUC      *usecase.PharmacyUseCase
	interval        time.Duration
	areaRefreshSkip int
}

func NewRefreshWorker(
	areaUC *usecase.AreaUseCase,
	pharmacyUC *usecase.PharmacyUseCase,
	interval time.Duration,
	areaRefreshSkip int,
	logger *zap.Logger,
) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker:      NewBaseWorker("upstream-refresh", logger),
		areaUC:          areaUC,
		pharmacyUC:      pharmacyUC,
		interval:        interval,
		areaRefreshSkip: areaRefreshSkip,
	}
}

func (w *RefreshWorker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Logger().Info("Refresh worker started",
		zap.Duration("interval", w.interval),
		zap.Int("area_refresh_skip", w.areaRefreshSkip))

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			w.Logger().Info("Refresh worker context cancelled")
			return nil
		case <-w.StopChan():
			w.Logger().Info("Refresh worker stopped")
			return nil
		case <-ticker.C:
			ticks++
			w.refresh(ctx, ticks)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context, ticks int) {
	runID := uuid.NewString()

	if err := w.pharmacyUC.Refresh(ctx); err != nil {
		w.Logger().Warn("Pharmacy refresh failed, keeping previous data",
			zap.String("run_id", runID),
			zap.Error(err))
	}

	if w.areaRefreshSkip > 0 && ticks%w.areaRefreshSkip == 0 {
		if err := w.areaUC.Refresh(ctx); err != nil {
			w.Logger().Warn("Area refresh failed, keeping previous data",
				zap.String("run_id", runID),
				zap.Error(err))
		}
	}
}
