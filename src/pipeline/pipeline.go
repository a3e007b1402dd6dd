package pipeline

import (
	"time"

	"cafe-analytics/src/analysis"
	"cafe-analytics/src/cleaning"
	"cafe-analytics/src/config"
	"cafe-analytics/src/helpers"
	"cafe-analytics/src/ingest"
	"cafe-analytics/src/insights"
	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"
	"cafe-analytics/src/utils"
)

// -----------------------------------------------------------------------------
// Pipeline: one full batch run. Load every source, clean, aggregate, generate
// insights, and fold the results into a snapshot. A run never mutates shared
// state; callers decide what to do with the snapshot (serve, store, render).
// -----------------------------------------------------------------------------

type Pipeline struct {
	Config     *config.Config
	Loader     *ingest.MultiSourceLoader
	Cleaner    *cleaning.Cleaner
	Aggregator *analysis.Aggregator
	Insights   *insights.Generator
	Logger     *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPipeline(cfg *config.Config, log *logger.Logger) *Pipeline {
	start, end := cfg.DateRange()
	rules := cleaning.Rules{
		TotalTolerance: cfg.Analysis.TotalMismatchTolerance,
		MinAmount:      cfg.Analysis.MinTransactionAmount,
		MaxAmount:      cfg.Analysis.MaxTransactionAmount,
		StartDate:      start,
		EndDate:        end,
	}

	cal := utils.GetBusinessCalendar(cfg.Analysis.CalendarRegion)

	gen := insights.NewGenerator(logger.NewLogger(nil, "Insights"))
	gen.OpenHour = parseHour(cfg.Analysis.BusinessHours.Start)
	gen.CloseHour = parseHour(cfg.Analysis.BusinessHours.End)

	return &Pipeline{
		Config:     cfg,
		Loader:     ingest.FromConfig(cfg.MConfig, logger.NewLogger(nil, "Ingest")),
		Cleaner:    cleaning.NewCleaner(rules, logger.NewLogger(nil, "Cleaner")),
		Aggregator: analysis.NewAggregator(cal, logger.NewLogger(nil, "Aggregator")),
		Insights:   gen,
		Logger:     log,
	}
}

// parseHour extracts the hour from a validated "HH:MM" config value.
func parseHour(s string) int {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0
	}
	return t.Hour()
}

// -----------------------------------------------------------------------------

// Run executes one batch and returns the resulting snapshot.
// A schema mismatch in any source or an empty post-cleaning dataset is fatal
// for the run; all row-level problems are repaired or discarded instead.
func (p *Pipeline) Run() (*models.MSnapshot, error) {
	var metrics models.MProcessingMetrics

	ingestStart := time.Now()
	rows, err := p.Loader.LoadAll()
	if err != nil {
		return nil, err
	}
	metrics.IngestTimeSeconds = time.Since(ingestStart).Seconds()
	metrics.SourcesRead = p.Loader.SourceCount()
	metrics.RowsRead = len(rows)

	cleanStart := time.Now()
	txns, stats := p.Cleaner.Clean(rows)
	metrics.CleaningTimeSeconds = time.Since(cleanStart).Seconds()

	if len(txns) == 0 {
		return nil, &helpers.EmptyDatasetError{RowsRead: len(rows), Discarded: stats.Discarded}
	}

	aggStart := time.Now()
	views := p.Aggregator.BuildViews(txns)
	insightList := p.Insights.Generate(views, txns)
	metrics.AggregateTimeSeconds = time.Since(aggStart).Seconds()

	snapshot := &models.MSnapshot{
		Type:        "INITIAL",
		GeneratedAt: time.Now().Unix(),
		Summary:     buildSummary(txns, views),
		Cleaning:    stats,
		Views:       *views,
		Insights:    insightList,
		Metrics:     metrics,

		Transactions: txns,
	}

	p.Logger.Info("Pipeline run complete: %d transactions, $%.2f revenue",
		snapshot.Summary.TotalTransactions, snapshot.Summary.TotalRevenue)
	return snapshot, nil
}

// -----------------------------------------------------------------------------

func buildSummary(txns []models.MTransaction, views *models.MViews) models.MSummary {
	items := make(map[string]struct{})
	locations := make(map[string]struct{})
	for _, t := range txns {
		items[t.Item] = struct{}{}
		locations[t.Location] = struct{}{}
	}

	summary := models.MSummary{
		TotalTransactions: len(txns),
		TotalRevenue:      views.TotalRevenue(),
		UniqueItems:       len(items),
		UniqueLocations:   len(locations),
	}
	if len(views.Daily) > 0 {
		summary.StartDate = views.Daily[0].Date
		summary.EndDate = views.Daily[len(views.Daily)-1].Date
	}
	return summary
}
