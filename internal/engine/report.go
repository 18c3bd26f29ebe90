package engine

import (
	"context"
	"time"

	"bettrack/internal/models"
	"bettrack/internal/performance"
)

// FullReport bundles every analysis over one history window.
type FullReport struct {
	Risk        *RiskReport
	Patterns    *PatternReport
	Simulations []models.SimulationResult
	Ranking     []models.TipsterStats
	GeneratedAt time.Time
}

// GetFullReport runs risk analysis, pattern mining, strategy comparison and
// tipster ranking concurrently on a small worker pool. The first error wins;
// the rest of the report is discarded.
func (e *Engine) GetFullReport(ctx context.Context, daysBack int) (*FullReport, error) {
	report := &FullReport{GeneratedAt: time.Now()}
	errs := make([]error, 4)

	pool := performance.NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	pool.Run(
		func() { report.Risk, errs[0] = e.GetRiskAnalysis(ctx, daysBack) },
		func() { report.Patterns, errs[1] = e.GetPatterns(ctx, daysBack, 0) },
		func() { report.Simulations, errs[2] = e.RunSimulation(ctx, daysBack, nil) },
		func() { report.Ranking, errs[3] = e.GetTipsterRanking(ctx, daysBack) },
	)

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return report, nil
}
