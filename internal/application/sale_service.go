package application

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/terrasapp/sales-api/internal/dbx"
	"github.com/terrasapp/sales-api/internal/domain/entity"
	repo "github.com/terrasapp/sales-api/internal/domain/repository"
	"github.com/terrasapp/sales-api/pkg/helpers"
	"github.com/terrasapp/sales-api/pkg/paging"
)

var ErrSaleNotFound = errors.New("sale not found")

// SaleService mirrors UserService for the sales table, plus the bulk import
// and the aggregate metrics.
type SaleService struct {
	DB     dbx.DB
	Repo   repo.SaleRepository
	Logger *logrus.Logger
}

func NewSaleService(db dbx.DB, r repo.SaleRepository, logger *logrus.Logger) *SaleService {
	return &SaleService{DB: db, Repo: r, Logger: logger}
}

type SaleInput struct {
	PurchaserName   string
	ItemDescription string
	ItemPrice       float64
	PurchaseCount   int
	MerchantAddress string
	MerchantName    string
	UserID          *int64
}

func newSaleRecord(in SaleInput, now string) *entity.Sale {
	return &entity.Sale{
		PurchaserName:   in.PurchaserName,
		ItemDescription: in.ItemDescription,
		ItemPrice:       in.ItemPrice,
		PurchaseCount:   in.PurchaseCount,
		MerchantAddress: in.MerchantAddress,
		MerchantName:    in.MerchantName,
		UserID:          in.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *SaleService) Create(ctx context.Context, in SaleInput) (*entity.Sale, error) {
	sale := newSaleRecord(in, helpers.FormatDatabaseDatetime(time.Now()))
	err := dbx.WithTx(ctx, s.DB, func(ctx context.Context, tx pgx.Tx) error {
		return s.Repo.Create(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Import creates every record inside one shared transaction: a failure on any
// item rolls back the whole batch, there are no partial commits.
func (s *SaleService) Import(ctx context.Context, inputs []SaleInput) error {
	now := helpers.FormatDatabaseDatetime(time.Now())
	return dbx.WithTx(ctx, s.DB, func(ctx context.Context, tx pgx.Tx) error {
		for _, in := range inputs {
			if err := s.Repo.Create(ctx, tx, newSaleRecord(in, now)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SaleService) Search(ctx context.Context, parameter string, page, size *int) (paging.Page[entity.Sale], error) {
	return s.Repo.Search(ctx, s.DB, parameter, page, size)
}

func (s *SaleService) FindByID(ctx context.Context, id int64) (*entity.Sale, error) {
	sale, err := s.Repo.FindByID(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrSaleNotFound
	}
	return sale, err
}

func (s *SaleService) Update(ctx context.Context, id int64, in SaleInput) (*entity.Sale, error) {
	patch := newSaleRecord(in, helpers.FormatDatabaseDatetime(time.Now()))

	var updated *entity.Sale
	err := dbx.WithTx(ctx, s.DB, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		updated, err = s.Repo.Update(ctx, tx, id, patch)
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *SaleService) Delete(ctx context.Context, id int64) (*entity.Sale, error) {
	var deleted *entity.Sale
	err := dbx.WithTx(ctx, s.DB, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		deleted, err = s.Repo.Delete(ctx, tx, id)
		return err
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *SaleService) DeleteAll(ctx context.Context) error {
	return dbx.WithTx(ctx, s.DB, func(ctx context.Context, tx pgx.Tx) error {
		return s.Repo.DeleteAll(ctx, tx)
	})
}

// Metrics runs the three aggregate queries independently, outside any shared
// transaction. The figures may disagree with one another under concurrent
// writes; callers accept that.
func (s *SaleService) Metrics(ctx context.Context) (entity.SalesMetrics, error) {
	var m entity.SalesMetrics
	var err error

	if m.TotalSales, err = s.Repo.Count(ctx, s.DB); err != nil {
		return entity.SalesMetrics{}, err
	}
	if m.PurchasedItems, err = s.Repo.CountPurchasedItems(ctx, s.DB); err != nil {
		return entity.SalesMetrics{}, err
	}
	if m.GrossRevenue, err = s.Repo.GrossRevenue(ctx, s.DB); err != nil {
		return entity.SalesMetrics{}, err
	}
	return m, nil
}
