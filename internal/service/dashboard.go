// internal/service/dashboard.go
package service

import (
	"context"

	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/store"
)

type Dashboard struct {
	Totals     question.Totals
	Categories []question.CategoryStats
}

type DashboardService struct {
	store store.Store
}

func NewDashboardService(s store.Store) *DashboardService {
	return &DashboardService{store: s}
}

func (ds *DashboardService) Summary(ctx context.Context) (*Dashboard, error) {
	totals, err := ds.store.Totals(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := ds.store.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Totals: totals, Categories: cats}, nil
}
