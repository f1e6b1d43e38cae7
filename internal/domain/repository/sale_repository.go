package repository

import (
	"context"

	"github.com/terrasapp/sales-api/internal/dbx"
	"github.com/terrasapp/sales-api/internal/domain/entity"
	"github.com/terrasapp/sales-api/pkg/paging"
	"github.com/terrasapp/sales-api/pkg/search"
)

// SaleRepository defines the sale-related database operations, including the
// aggregate queries behind the sales metrics endpoint.
type SaleRepository interface {
	Create(ctx context.Context, q dbx.Querier, s *entity.Sale) error
	Search(ctx context.Context, q dbx.Querier, parameter string, page, size *int) (paging.Page[entity.Sale], error)
	FindByID(ctx context.Context, q dbx.Querier, id int64) (*entity.Sale, error)
	FindOne(ctx context.Context, q dbx.Querier, conds []search.Equality) (*entity.Sale, error)
	Update(ctx context.Context, q dbx.Querier, id int64, s *entity.Sale) (*entity.Sale, error)
	Delete(ctx context.Context, q dbx.Querier, id int64) (*entity.Sale, error)
	DeleteAll(ctx context.Context, q dbx.Querier) error
	Count(ctx context.Context, q dbx.Querier) (int64, error)
	CountPurchasedItems(ctx context.Context, q dbx.Querier) (int64, error)
	GrossRevenue(ctx context.Context, q dbx.Querier) (float64, error)
}
