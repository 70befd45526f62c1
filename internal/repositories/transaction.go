package repositories

import (
	"context"

	"gorm.io/gorm"
)

// TransactionManager runs a unit of work inside one database transaction.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise.
	Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the running transaction.
type RepositoryFactory interface {
	Orders() OrderRepository
	Cart() CartRepository
}

type gormTransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &gormTransactionManager{db: db}
}

func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositoryFactory{tx: tx})
	})
}

type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) Orders() OrderRepository {
	return NewGORMOrderRepository(f.tx)
}

func (f *gormRepositoryFactory) Cart() CartRepository {
	return NewGORMCartRepository(f.tx)
}
