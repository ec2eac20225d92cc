package keyset

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Executor runs a Predicate against storage and returns rows filtered, sorted
// and limited exactly as the predicate says.
type Executor[R any, F ~string] interface {
	Execute(ctx context.Context, predicate Predicate[F]) ([]R, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc[R any, F ~string] func(ctx context.Context, predicate Predicate[F]) ([]R, error)

// Execute - implements Executor.
func (f ExecutorFunc[R, F]) Execute(ctx context.Context, predicate Predicate[F]) ([]R, error) {
	return f(ctx, predicate)
}

// GORMExecutor executes predicates on top of a base gorm query. The base query
// selects the table and any business filters, e.g.:
//
//	keyset.NewGORMExecutor[models.Post, string](db.Model(&models.Post{}).Where("owner_id = ?", ownerID))
type GORMExecutor[R any, F ~string] struct {
	db *gorm.DB
}

func NewGORMExecutor[R any, F ~string](db *gorm.DB) *GORMExecutor[R, F] {
	return &GORMExecutor[R, F]{db: db}
}

// Execute - implements Executor.
func (e *GORMExecutor[R, F]) Execute(ctx context.Context, predicate Predicate[F]) ([]R, error) {
	if e == nil || e.db == nil {
		return nil, fmt.Errorf("gorm executor is not initialized")
	}

	if err := predicate.Validate(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	var rows []R
	if err := predicate.Apply(e.db.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

var _ Executor[Row, string] = (*GORMExecutor[Row, string])(nil)

// Paginate plans the request, executes the predicate and reduces the result.
func Paginate[R any, F ~string](
	ctx context.Context,
	executor Executor[R, F],
	params Params[F],
	extract Extractor[R, F],
) (Page[R], error) {
	pagination := Plan(params)

	rows, err := executor.Execute(ctx, pagination.Predicate())
	if err != nil {
		return Page[R]{}, fmt.Errorf("cannot execute pagination query: %w", err)
	}

	return Reduce(pagination, rows, extract)
}
