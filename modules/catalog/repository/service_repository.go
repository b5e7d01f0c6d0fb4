package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"tnb-api/core/database"
	"tnb-api/core/logger"
	"tnb-api/modules/catalog/entity"
)

// ServiceRepository handles price-list database operations
type ServiceRepository struct {
	DB database.IDatabase
}

func NewServiceRepository(db database.IDatabase) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

// ServiceRepositoryInterface defines the repository contract
type ServiceRepositoryInterface interface {
	FindActiveByNames(ctx context.Context, names []string) ([]entity.Service, error)
	ListActive(ctx context.Context) ([]entity.Service, error)
}

// FindActiveByNames resolves a set of requested service names to active
// price-list rows. Names with no match are silently absent from the result.
func (r *ServiceRepository) FindActiveByNames(ctx context.Context, names []string) ([]entity.Service, error) {
	query := `
		SELECT id, name, description, price, duration, is_active, created_at, updated_at
		FROM services
		WHERE name = ANY($1)
		  AND is_active = true
		ORDER BY price ASC
	`

	var services []entity.Service
	err := r.DB.SelectContext(ctx, &services, query, pq.Array(names))
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.Service{}, nil
		}
		logger.Error("ServiceRepository:FindActiveByNames", err)
		return nil, err
	}

	return services, nil
}

func (r *ServiceRepository) ListActive(ctx context.Context) ([]entity.Service, error) {
	query := `
		SELECT id, name, description, price, duration, is_active, created_at, updated_at
		FROM services
		WHERE is_active = true
		ORDER BY price ASC
	`

	var services []entity.Service
	err := r.DB.SelectContext(ctx, &services, query)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.Service{}, nil
		}
		logger.Error("ServiceRepository:ListActive", err)
		return nil, err
	}

	return services, nil
}
