package service

import (
	"context"
	"fmt"
	"socialnetwork/internal/repository"
)

type HealthStatus struct {
	Status      string
	CountTables int
}

type TablesService interface {
	Health(ctx context.Context) (*HealthStatus, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) Health(ctx context.Context) (*HealthStatus, error) {
	if err := t.tablesRepo.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database is unreachable: %w", err)
	}

	countTables, err := t.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return nil, err
	}

	return &HealthStatus{Status: "ok", CountTables: countTables}, nil
}
