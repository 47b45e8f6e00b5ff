package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type gormBackend struct {
	db *gorm.DB
}

// NewGormStore builds a Store over a SQL database opened with gorm.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:           NewUserRepository(db),
		Companies:       NewCompanyRepository(db),
		Reviews:         NewReviewRepository(db),
		Accomplishments: NewAccomplishmentRepository(db),
		Stats:           NewStatsRepository(db),
		Backend:         &gormBackend{db: db},
	}
}

func (b *gormBackend) Name() string {
	return b.db.Dialector.Name()
}

func (b *gormBackend) Ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()

	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

func (b *gormBackend) Close(ctx context.Context) error {
	sqlDB, err := b.db.DB()

	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}

	return sqlDB.Close()
}
