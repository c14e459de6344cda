package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/config"
	"github.com/mamadbah2/milkbill/internal/domain/models"
	"github.com/mamadbah2/milkbill/internal/repository/mongodb"
	"github.com/mamadbah2/milkbill/internal/repository/postgres"
	"github.com/mamadbah2/milkbill/internal/repository/supabase"
)

// ErrUnknownDriver is returned when STORE_DRIVER names no known store.
var ErrUnknownDriver = errors.New("unknown store driver")

// CustomerStore persists the customer directory.
type CustomerStore interface {
	SearchCustomers(ctx context.Context, term string, limit int) ([]models.Customer, error)
	UpsertCustomer(ctx context.Context, customer models.Customer) error
}

// BillStore persists bill snapshots.
type BillStore interface {
	InsertBill(ctx context.Context, bill models.BillRecord) error
	ListBills(ctx context.Context, period string) ([]models.BillRecord, error)
}

// Store is implemented by every driver.
type Store interface {
	CustomerStore
	BillStore
	Close(ctx context.Context) error
}

var (
	_ Store = (*supabase.Repository)(nil)
	_ Store = (*postgres.Repository)(nil)
	_ Store = (*mongodb.MongoDBRepository)(nil)
)

// Open connects to the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case config.StoreSupabase:
		return supabase.NewRepository(cfg.SupabaseURL, cfg.SupabaseKey, logger.Named("repo.supabase")), nil
	case config.StorePostgres:
		repo, err := postgres.Open(cfg.PostgresDSN, logger.Named("repo.postgres"))
		if err != nil {
			return nil, err
		}
		if err := repo.AutoMigrate(); err != nil {
			_ = repo.Close(ctx)
			return nil, err
		}
		return repo, nil
	case config.StoreMongoDB:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoURI, cfg.MongoDBName, logger.Named("repo.mongodb"))
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = repo.Close(ctx)
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
