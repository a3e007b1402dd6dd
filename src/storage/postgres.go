package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	// Schema named after the executable so several analyzers can share one
	// database without clashing.
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresDB{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.recreateTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) recreateTables() error {
	statements := []string{
		fmt.Sprintf(`DROP TABLE IF EXISTS "%s"."transactions"`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE "%s"."transactions" (
				id TEXT PRIMARY KEY,
				item TEXT,
				quantity INTEGER,
				unit_price DOUBLE PRECISION,
				total DOUBLE PRECISION,
				payment_method TEXT,
				location TEXT,
				timestamp BIGINT
			);`, d.Schema),
		fmt.Sprintf(`DROP TABLE IF EXISTS "%s"."sales_by_day"`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE "%s"."sales_by_day" (
				date TEXT PRIMARY KEY,
				revenue DOUBLE PRECISION,
				count INTEGER,
				revenue_change DOUBLE PRECISION,
				business_day BOOLEAN
			);`, d.Schema),
		fmt.Sprintf(`DROP TABLE IF EXISTS "%s"."sales_by_week"`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE "%s"."sales_by_week" (
				week_start TEXT PRIMARY KEY,
				revenue DOUBLE PRECISION,
				count INTEGER
			);`, d.Schema),
		fmt.Sprintf(`DROP TABLE IF EXISTS "%s"."sales_heatmap"`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE "%s"."sales_heatmap" (
				weekday INTEGER,
				hour INTEGER,
				revenue DOUBLE PRECISION,
				count INTEGER,
				PRIMARY KEY (weekday, hour)
			);`, d.Schema),
		fmt.Sprintf(`DROP TABLE IF EXISTS "%s"."sales_by_product"`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE "%s"."sales_by_product" (
				item TEXT PRIMARY KEY,
				revenue DOUBLE PRECISION,
				units INTEGER,
				count INTEGER,
				avg_price DOUBLE PRECISION
			);`, d.Schema),
		fmt.Sprintf(`DROP TABLE IF EXISTS "%s"."sales_by_location"`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE "%s"."sales_by_location" (
				location TEXT PRIMARY KEY,
				revenue DOUBLE PRECISION,
				count INTEGER
			);`, d.Schema),
		fmt.Sprintf(`DROP TABLE IF EXISTS "%s"."sales_by_payment"`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE "%s"."sales_by_payment" (
				payment_method TEXT PRIMARY KEY,
				revenue DOUBLE PRECISION,
				count INTEGER
			);`, d.Schema),
		fmt.Sprintf(`DROP TABLE IF EXISTS "%s"."insights"`, d.Schema),
		fmt.Sprintf(`
			CREATE TABLE "%s"."insights" (
				position INTEGER PRIMARY KEY,
				label TEXT,
				text TEXT
			);`, d.Schema),
	}

	for _, stmt := range statements {
		if _, err := d.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to rebuild tables: %w", err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveTransactions(txns []models.MTransaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM "%s"."transactions"`, d.Schema)); err != nil {
		return err
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO "%s"."transactions" (id, item, quantity, unit_price, total, payment_method, location, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, d.Schema))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range txns {
		_, err := stmt.Exec(t.ID, t.Item, t.Quantity, t.UnitPrice, t.Total,
			string(t.PaymentMethod), t.Location, t.Timestamp.Unix())
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveViews(views *models.MViews) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tables := []string{"sales_by_day", "sales_by_week", "sales_heatmap", "sales_by_product", "sales_by_location", "sales_by_payment"}
	for _, table := range tables {
		if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM "%s"."%s"`, d.Schema, table)); err != nil {
			return err
		}
	}

	dayStmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO "%s"."sales_by_day" (date, revenue, count, revenue_change, business_day) VALUES ($1, $2, $3, $4, $5)`, d.Schema))
	if err != nil {
		return err
	}
	defer dayStmt.Close()
	for _, b := range views.Daily {
		if _, err := dayStmt.Exec(b.Date, b.Revenue, b.Count, b.RevenueChange, b.BusinessDay); err != nil {
			return err
		}
	}

	weekStmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO "%s"."sales_by_week" (week_start, revenue, count) VALUES ($1, $2, $3)`, d.Schema))
	if err != nil {
		return err
	}
	defer weekStmt.Close()
	for _, b := range views.Weekly {
		if _, err := weekStmt.Exec(b.WeekStart, b.Revenue, b.Count); err != nil {
			return err
		}
	}

	heatStmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO "%s"."sales_heatmap" (weekday, hour, revenue, count) VALUES ($1, $2, $3, $4)`, d.Schema))
	if err != nil {
		return err
	}
	defer heatStmt.Close()
	for _, c := range views.Heatmap {
		if _, err := heatStmt.Exec(c.Weekday, c.Hour, c.Revenue, c.Count); err != nil {
			return err
		}
	}

	prodStmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO "%s"."sales_by_product" (item, revenue, units, count, avg_price) VALUES ($1, $2, $3, $4, $5)`, d.Schema))
	if err != nil {
		return err
	}
	defer prodStmt.Close()
	for _, b := range views.Products {
		if _, err := prodStmt.Exec(b.Item, b.Revenue, b.Units, b.Count, b.AvgPrice); err != nil {
			return err
		}
	}

	locStmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO "%s"."sales_by_location" (location, revenue, count) VALUES ($1, $2, $3)`, d.Schema))
	if err != nil {
		return err
	}
	defer locStmt.Close()
	for _, b := range views.Locations {
		if _, err := locStmt.Exec(b.Key, b.Revenue, b.Count); err != nil {
			return err
		}
	}

	payStmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO "%s"."sales_by_payment" (payment_method, revenue, count) VALUES ($1, $2, $3)`, d.Schema))
	if err != nil {
		return err
	}
	defer payStmt.Close()
	for _, b := range views.Payments {
		if _, err := payStmt.Exec(b.Key, b.Revenue, b.Count); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SaveInsights(insights []models.MInsight) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM "%s"."insights"`, d.Schema)); err != nil {
		return err
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO "%s"."insights" (position, label, text) VALUES ($1, $2, $3)`, d.Schema))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, ins := range insights {
		if _, err := stmt.Exec(i, ins.Label, ins.Text); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
