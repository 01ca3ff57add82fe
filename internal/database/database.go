// Package database manages the GORM connection and schema migration.
package database

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fredson0/Agendamento-Amado/internal/config"
	"github.com/fredson0/Agendamento-Amado/internal/models"
)

// Connect opens a Postgres connection through GORM. TranslateError is enabled
// so unique-constraint violations surface as gorm.ErrDuplicatedKey on every
// supported driver.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates the schema and the partial unique index that enforces slot
// exclusivity at the storage layer. The application-level availability check
// is advisory only; this index is what actually prevents double booking under
// concurrent requests.
func Migrate(db *gorm.DB, slotPolicy string) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Appointment{},
		&models.ContactMessage{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	columns := "date, time"
	if slotPolicy == config.SlotPolicyPerService {
		columns = "service_id, date, time"
	}

	// Cancelled rows fall out of the index, freeing the slot for rebooking.
	stmt := fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot ON appointments (%s) WHERE status <> 'cancelled'`,
		columns,
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create slot index: %w", err)
	}

	return nil
}

// SeedAdmin creates the bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured and no account with that email exists. This
// is the only path to an admin role besides direct database access.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	log.Printf("seeded admin account %s", email)
	return nil
}
