package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafe-analytics/src/config"
	"cafe-analytics/src/helpers"
	"cafe-analytics/src/interfaces"
	"cafe-analytics/src/logger"
	"cafe-analytics/src/pipeline"
	"cafe-analytics/src/report"
	"cafe-analytics/src/server"
	"cafe-analytics/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	serve := flag.Bool("serve", false, "serve the live dashboard instead of a one-shot report")
	flag.Parse()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg, cfg.Name)

	// 2. Setup Storage
	var db interfaces.IDatabase

	switch cfg.Storage.DBType {
	case "postgres":
		db, err = storage.NewPostgresDB(cfg.MConfig, appLogger)
	case "none":
		// persistence disabled
	default:
		db, err = storage.NewSQLiteDB(cfg.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if db != nil {
		if err := db.Initialize(); err != nil {
			appLogger.Critical("Failed to migrate db: %v", err)
		}
		defer db.Close()
	}

	// 3. Initial Pipeline Run
	pipe := pipeline.NewPipeline(cfg, appLogger)
	writer := report.NewWriter(cfg.Report.OutputDir, cfg.Report.Title)

	snapshot, err := pipe.Run()
	if err != nil {
		appLogger.Critical("Pipeline failed: %v", err)
	}

	// Persistence failures are reported but never abort the run: the report
	// and dashboard work from the in-memory snapshot.
	errHandler := helpers.NewErrorHandler()
	if db != nil {
		errHandler.Handle(db.SaveTransactions(snapshot.Transactions), "persisting transactions")
		errHandler.Handle(db.SaveViews(&snapshot.Views), "persisting views")
		errHandler.Handle(db.SaveInsights(snapshot.Insights), "persisting insights")
	}

	path, err := writer.Write(snapshot)
	if err != nil {
		appLogger.Critical("Failed to write report: %v", err)
	}
	appLogger.Info("Report written to %s", path)

	if !*serve {
		return
	}

	// 4. Live Dashboard
	var srv interfaces.IDataExchanger = server.NewDashboardServer(cfg.MConfig, appLogger)
	srv.UpdateSnapshot(snapshot)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 5. Background Refresh
	interval := time.Duration(cfg.Data.RefreshIntervalSeconds) * time.Second
	refresher := pipeline.NewRefresher(pipe, srv, db, writer, interval, logger.NewLogger(nil, "Refresher"))
	go refresher.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	refresher.Stop()
	srv.Stop()
}
