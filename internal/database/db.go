// Package database persists RestauPilot records through gorm.
package database

import (
	"errors"
	"fmt"

	"restaupilot/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("conflicting record")
	ErrInvalid  = errors.New("invalid input")
)

// Store is the data access layer used by the API.
type Store struct {
	db *gorm.DB
}

// Open connects to driver ("sqlite3" or "postgres") at dsn.
func Open(driver, dsn string) (*Store, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == "sqlite3" {
		// one connection keeps :memory: databases shared and serialises writers
		db.DB().SetMaxOpenConns(1)
	}
	return &Store{db: db}, nil
}

// Migrate creates or updates every table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.Restaurant{},
		&models.InventoryItem{},
		&models.Equipment{},
		&models.MaintenanceTask{},
		&models.StaffMember{},
		&models.Shift{},
		&models.ComplianceRequirement{},
		&models.WasteLog{},
		&models.TrainingModule{},
		&models.TrainingCompletion{},
		&models.Extension{},
		&models.Integration{},
		&models.SharedBill{},
		&models.BillParticipant{},
		&models.User{},
	).Error
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks the connection.
func (s *Store) Ping() error {
	return s.db.DB().Ping()
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func notFound(err error, what string) error {
	if gorm.IsRecordNotFoundError(err) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// ListRestaurants returns every restaurant in the chain.
func (s *Store) ListRestaurants() ([]models.Restaurant, error) {
	var out []models.Restaurant
	if err := s.db.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return out, nil
}

// GetRestaurant loads one restaurant.
func (s *Store) GetRestaurant(id uint) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.First(&r, id).Error; err != nil {
		return nil, notFound(err, "restaurant")
	}
	return &r, nil
}

// CreateRestaurant inserts a restaurant.
func (s *Store) CreateRestaurant(r *models.Restaurant) error {
	if r.Name == "" {
		return fmt.Errorf("%w: restaurant name is required", ErrInvalid)
	}
	return s.db.Create(r).Error
}

// isUniqueViolation reports whether err is a unique constraint failure from
// either supported driver.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
