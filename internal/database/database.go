package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS vendors (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		shop_domain TEXT,
		access_token TEXT,
		commission_rate DECIMAL(5,4) DEFAULT 0,
		status TEXT DEFAULT 'ACTIVE',
		last_sync TIMESTAMPTZ,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS settings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		key TEXT UNIQUE NOT NULL,
		value TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS manual_orders (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		vendor_id UUID,
		customer_name TEXT,
		customer_email TEXT,
		total DECIMAL(12,2) DEFAULT 0,
		note TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS commissions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		vendor_id UUID NOT NULL,
		order_id TEXT NOT NULL,
		order_name TEXT,
		basis DECIMAL(12,2) NOT NULL,
		rate DECIMAL(5,4) NOT NULL,
		amount DECIMAL(12,2) NOT NULL,
		status TEXT DEFAULT 'PENDING',
		invoice_id UUID,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		vendor_id UUID NOT NULL,
		number TEXT UNIQUE NOT NULL,
		period_start TIMESTAMPTZ,
		period_end TIMESTAMPTZ,
		total DECIMAL(12,2) NOT NULL,
		status TEXT DEFAULT 'ISSUED',
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS page_views (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_type TEXT NOT NULL,
		path TEXT,
		referrer TEXT,
		visitor_id TEXT,
		user_agent TEXT,
		occurred_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
