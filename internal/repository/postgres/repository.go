package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mamadbah2/milkbill/internal/domain/models"
)

// Repository stores customers and bills in PostgreSQL through gorm.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open connects to the database at dsn.
func Open(dsn string, log *zap.Logger) (*Repository, error) {
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)

	return NewRepository(db, log), nil
}

// NewRepository wraps an existing gorm handle.
func NewRepository(db *gorm.DB, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{db: db, logger: log}
}

// AutoMigrate creates the customers and bill_details tables when missing.
func (r *Repository) AutoMigrate() error {
	if err := r.db.AutoMigrate(&models.Customer{}, &models.BillRecord{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SearchCustomers returns up to limit customers whose name contains term, ignoring case.
func (r *Repository) SearchCustomers(ctx context.Context, term string, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+term+"%").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return customers, nil
}

// UpsertCustomer inserts the customer or overwrites the name stored for its mobile number.
func (r *Repository) UpsertCustomer(ctx context.Context, customer models.Customer) error {
	row := models.Customer{Name: customer.Name, MobileNumber: customer.MobileNumber}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "mobile_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}

	r.logger.Debug("customer upserted", zap.String("mobile_number", customer.MobileNumber))
	return nil
}

// InsertBill stores a bill record.
func (r *Repository) InsertBill(ctx context.Context, bill models.BillRecord) error {
	row := bill
	row.ID = ""
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}

	r.logger.Debug("bill inserted", zap.String("mobile_number", bill.MobileNumber), zap.String("billing_period", bill.BillingPeriod))
	return nil
}

// ListBills returns every bill recorded for the billing period label.
func (r *Repository) ListBills(ctx context.Context, period string) ([]models.BillRecord, error) {
	var bills []models.BillRecord
	err := r.db.WithContext(ctx).
		Where("billing_period = ?", period).
		Order("created_at ASC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

// Close releases the connection pool.
func (r *Repository) Close(context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
