package storage

import (
	"database/sql"
	"fmt"

	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteDB, error) {
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.recreateTables()
}

// -----------------------------------------------------------------------------

// recreateTables drops and rebuilds every table. Each pipeline run persists a
// complete batch, so the previous contents are never merged with the new ones.
func (d *SQLiteDB) recreateTables() error {
	statements := []string{
		`DROP TABLE IF EXISTS transactions`,
		`CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			item TEXT,
			quantity INTEGER,
			unit_price REAL,
			total REAL,
			payment_method TEXT,
			location TEXT,
			timestamp INTEGER
		);`,
		`DROP TABLE IF EXISTS sales_by_day`,
		`CREATE TABLE sales_by_day (
			date TEXT PRIMARY KEY,
			revenue REAL,
			count INTEGER,
			revenue_change REAL,
			business_day INTEGER
		);`,
		`DROP TABLE IF EXISTS sales_by_week`,
		`CREATE TABLE sales_by_week (
			week_start TEXT PRIMARY KEY,
			revenue REAL,
			count INTEGER
		);`,
		`DROP TABLE IF EXISTS sales_heatmap`,
		`CREATE TABLE sales_heatmap (
			weekday INTEGER,
			hour INTEGER,
			revenue REAL,
			count INTEGER,
			PRIMARY KEY (weekday, hour)
		);`,
		`DROP TABLE IF EXISTS sales_by_product`,
		`CREATE TABLE sales_by_product (
			item TEXT PRIMARY KEY,
			revenue REAL,
			units INTEGER,
			count INTEGER,
			avg_price REAL
		);`,
		`DROP TABLE IF EXISTS sales_by_location`,
		`CREATE TABLE sales_by_location (
			location TEXT PRIMARY KEY,
			revenue REAL,
			count INTEGER
		);`,
		`DROP TABLE IF EXISTS sales_by_payment`,
		`CREATE TABLE sales_by_payment (
			payment_method TEXT PRIMARY KEY,
			revenue REAL,
			count INTEGER
		);`,
		`DROP TABLE IF EXISTS insights`,
		`CREATE TABLE insights (
			position INTEGER PRIMARY KEY,
			label TEXT,
			text TEXT
		);`,
	}

	for _, stmt := range statements {
		if _, err := d.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run %q: %w", stmt[:24], err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) SaveTransactions(txns []models.MTransaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM transactions"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (id, item, quantity, unit_price, total, payment_method, location, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
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

func (d *SQLiteDB) SaveViews(views *models.MViews) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tables := []string{"sales_by_day", "sales_by_week", "sales_heatmap", "sales_by_product", "sales_by_location", "sales_by_payment"}
	for _, table := range tables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	dayStmt, err := tx.Prepare(`INSERT INTO sales_by_day (date, revenue, count, revenue_change, business_day) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer dayStmt.Close()
	for _, b := range views.Daily {
		if _, err := dayStmt.Exec(b.Date, b.Revenue, b.Count, b.RevenueChange, b.BusinessDay); err != nil {
			return err
		}
	}

	weekStmt, err := tx.Prepare(`INSERT INTO sales_by_week (week_start, revenue, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer weekStmt.Close()
	for _, b := range views.Weekly {
		if _, err := weekStmt.Exec(b.WeekStart, b.Revenue, b.Count); err != nil {
			return err
		}
	}

	heatStmt, err := tx.Prepare(`INSERT INTO sales_heatmap (weekday, hour, revenue, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer heatStmt.Close()
	for _, c := range views.Heatmap {
		if _, err := heatStmt.Exec(c.Weekday, c.Hour, c.Revenue, c.Count); err != nil {
			return err
		}
	}

	prodStmt, err := tx.Prepare(`INSERT INTO sales_by_product (item, revenue, units, count, avg_price) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer prodStmt.Close()
	for _, b := range views.Products {
		if _, err := prodStmt.Exec(b.Item, b.Revenue, b.Units, b.Count, b.AvgPrice); err != nil {
			return err
		}
	}

	locStmt, err := tx.Prepare(`INSERT INTO sales_by_location (location, revenue, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer locStmt.Close()
	for _, b := range views.Locations {
		if _, err := locStmt.Exec(b.Key, b.Revenue, b.Count); err != nil {
			return err
		}
	}

	payStmt, err := tx.Prepare(`INSERT INTO sales_by_payment (payment_method, revenue, count) VALUES (?, ?, ?)`)
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

func (d *SQLiteDB) SaveInsights(insights []models.MInsight) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM insights"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO insights (position, label, text) VALUES (?, ?, ?)`)
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

func (d *SQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
