package pipeline

import (
	"time"

	"cafe-analytics/src/interfaces"
	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"
	"cafe-analytics/src/report"
)

// -----------------------------------------------------------------------------
// Refresher: periodically re-runs the pipeline so the dashboard follows the
// source files as new POS exports land. Each run replaces the previous
// snapshot wholesale.
// -----------------------------------------------------------------------------

type Refresher struct {
	Pipeline  *Pipeline
	Exchanger interfaces.IDataExchanger
	Database  interfaces.IDatabase // may be nil when storage is disabled
	Report    *report.Writer       // may be nil when no static report is wanted
	Interval  time.Duration
	Logger    *logger.Logger

	stop chan struct{}
}

// -----------------------------------------------------------------------------

func NewRefresher(p *Pipeline, exchanger interfaces.IDataExchanger, db interfaces.IDatabase, writer *report.Writer, interval time.Duration, log *logger.Logger) *Refresher {
	return &Refresher{
		Pipeline:  p,
		Exchanger: exchanger,
		Database:  db,
		Report:    writer,
		Interval:  interval,
		Logger:    log,
		stop:      make(chan struct{}),
	}
}

// -----------------------------------------------------------------------------

// Start blocks, re-running the pipeline on every tick until Stop is called.
// A failed run keeps the previous snapshot on the dashboard; the next tick
// retries.
func (r *Refresher) Start() {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	r.Logger.Info("Refreshing every %s", r.Interval)

	for {
		select {
		case <-ticker.C:
			snapshot, err := r.Pipeline.Run()
			if err != nil {
				r.Logger.Error("Refresh failed, keeping previous snapshot: %v", err)
				continue
			}
			r.Publish(snapshot)

		case <-r.stop:
			return
		}
	}
}

// -----------------------------------------------------------------------------

func (r *Refresher) Stop() {
	close(r.stop)
}

// -----------------------------------------------------------------------------

// Publish pushes a snapshot everywhere it is consumed: connected websocket
// clients, the database, and the static HTML report.
func (r *Refresher) Publish(snapshot *models.MSnapshot) {
	if r.Exchanger != nil {
		r.Exchanger.Broadcast(snapshot)
	}

	if r.Database != nil {
		if err := r.Database.SaveTransactions(snapshot.Transactions); err != nil {
			r.Logger.Error("Failed to persist transactions: %v", err)
		}
		if err := r.Database.SaveViews(&snapshot.Views); err != nil {
			r.Logger.Error("Failed to persist views: %v", err)
		}
		if err := r.Database.SaveInsights(snapshot.Insights); err != nil {
			r.Logger.Error("Failed to persist insights: %v", err)
		}
	}

	if r.Report != nil {
		if path, err := r.Report.Write(snapshot); err != nil {
			r.Logger.Error("Failed to write report: %v", err)
		} else {
			r.Logger.Info("Report written to %s", path)
		}
	}
}
