package store

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Alp4ka/keyset"
	"github.com/Alp4ka/keyset/internal/config"
)

// Open connects to the database described by cfg.
func Open(cfg *config.Database, logger gormlogger.Interface) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("empty database dsn")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	return db, nil
}

type Store struct {
	db       *gorm.DB
	maxLimit int
}

func New(db *gorm.DB, maxLimit int) *Store {
	return &Store{
		db:       db,
		maxLimit: maxLimit,
	}
}

type listOptions struct {
	ownerID *int64
}

type ListOption func(*listOptions)

// WithOwner keeps only rows owned by the given user.
func WithOwner(ownerID int64) ListOption {
	return func(o *listOptions) {
		o.ownerID = &ownerID
	}
}

// List returns one page of the entity's rows.
func List[M any](ctx context.Context, s *Store, entity Entity[M], req keyset.Request, opts ...ListOption) (keyset.Page[M], error) {
	var o listOptions
	for _, opt := range opts {
		opt(&o)
	}

	params, err := req.DecodeMax(s.maxLimit, entity.Columns, entity.DefaultSort)
	if err != nil {
		return keyset.Page[M]{}, fmt.Errorf("cannot list %s: %w", entity.Name, err)
	}

	query := s.db.Table(entity.Table)
	if o.ownerID != nil {
		if !entity.Owned {
			return keyset.Page[M]{}, fmt.Errorf("cannot list %s: entity has no owner", entity.Name)
		}
		query = query.Where("owner_id = ?", *o.ownerID)
	}

	page, err := keyset.Paginate(ctx, keyset.NewGORMExecutor[M, string](query), params, entity.Getters.Extractor())
	if err != nil {
		return keyset.Page[M]{}, fmt.Errorf("cannot list %s: %w", entity.Name, err)
	}

	return page, nil
}
