package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"farmstay-server/config"
	"farmstay-server/models"
)

var DB *gorm.DB

// Initialize sets up the database connection and runs migrations
func Initialize() error {
	connString := os.Getenv("DB_URL")
	if connString == "" {
		// Fall back to discrete settings for local development
		c := config.AppConfig.Database
		connString = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	}

	// Configure GORM logger
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Open database connection
	var err error
	DB, err = gorm.Open(postgres.Open(connString), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Successfully connected to database")

	// Run migrations
	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("✅ Database migrations completed successfully")

	return nil
}

// runMigrations creates or updates database tables
func runMigrations() error {
	if err := DB.AutoMigrate(
		&models.StaffUser{},
		&models.RefreshToken{},
		&models.Room{},
		&models.Customer{},
		&models.Booking{},
		&models.Tree{},
		&models.TreeRental{},
		&models.Task{},
		&models.TaskUpdate{},
		&models.Article{},
		&models.ContactMessage{},
	); err != nil {
		return err
	}

	if err := ensureOverlapConstraints(); err != nil {
		return err
	}

	return nil
}

// ensureOverlapConstraints installs exclusion constraints so the no-overlap
// invariants hold even when two staff submit at the same moment. The
// in-process guards exist for friendly error messages; these constraints are
// the enforcement.
func ensureOverlapConstraints() error {
	if err := DB.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	// Bookings: non-cancelled bookings on the same room must not overlap.
	// The date range is inclusive on both ends, matching the guard.
	if err := DB.Exec(`
		DO $$ BEGIN
			ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
				EXCLUDE USING gist (
					room_id WITH =,
					daterange(check_in_date, check_out_date, '[]') WITH &&
				) WHERE (status <> 'cancelled');
		EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
		END $$;
	`).Error; err != nil {
		return err
	}

	// Tree rentals: active rentals on the same tree must not overlap
	if err := DB.Exec(`
		DO $$ BEGIN
			ALTER TABLE tree_rentals ADD CONSTRAINT tree_rentals_no_overlap
				EXCLUDE USING gist (
					tree_id WITH =,
					daterange(start_date, end_date, '[]') WITH &&
				) WHERE (status = 'active');
		EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL;
		END $$;
	`).Error; err != nil {
		return err
	}

	return nil
}

func GetDB() *gorm.DB {
	return DB
}
