package repository

import (
	"context"

	"github.com/terrasapp/sales-api/internal/dbx"
	"github.com/terrasapp/sales-api/internal/domain/entity"
	"github.com/terrasapp/sales-api/pkg/paging"
	"github.com/terrasapp/sales-api/pkg/search"
)

// UserRepository defines the user-related database operations. Every method
// executes against the Querier it is handed; mutating calls receive the
// caller's transaction and never open their own.
type UserRepository interface {
	Create(ctx context.Context, q dbx.Querier, u *entity.User) error
	Search(ctx context.Context, q dbx.Querier, parameter string, page, size *int) (paging.Page[entity.UserWithSales], error)
	FindByID(ctx context.Context, q dbx.Querier, id int64) (*entity.User, error)
	FindOne(ctx context.Context, q dbx.Querier, conds []search.Equality) (*entity.User, error)
	Update(ctx context.Context, q dbx.Querier, id int64, u *entity.User) (*entity.User, error)
	Delete(ctx context.Context, q dbx.Querier, id int64) (*entity.User, error)
	DeleteAll(ctx context.Context, q dbx.Querier) error
	Count(ctx context.Context, q dbx.Querier) (int64, error)
}
