package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/terrasapp/sales-api/internal/dbx"
	"github.com/terrasapp/sales-api/internal/domain/entity"
	"github.com/terrasapp/sales-api/internal/domain/repository"
	"github.com/terrasapp/sales-api/pkg/paging"
	"github.com/terrasapp/sales-api/pkg/search"
)

var saleSearchColumns = []string{
	"purchaser_name",
	"item_description",
	"item_price",
	"purchase_count",
	"merchant_address",
	"merchant_name",
	"created_at",
	"updated_at",
}

var saleFilterColumns = map[string]bool{
	"sale_id":          true,
	"purchaser_name":   true,
	"item_description": true,
	"merchant_address": true,
	"merchant_name":    true,
	"user_id":          true,
}

const selectSale = `SELECT sale_id, purchaser_name, item_description, item_price, purchase_count, merchant_address, merchant_name, user_id, created_at, updated_at FROM sales`

type SaleRepository struct{}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

func (r *SaleRepository) Create(ctx context.Context, q dbx.Querier, s *entity.Sale) error {
	row := q.QueryRow(ctx, `
		INSERT INTO sales (purchaser_name, item_description, item_price, purchase_count, merchant_address, merchant_name, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING sale_id
	`, s.PurchaserName, s.ItemDescription, s.ItemPrice, s.PurchaseCount,
		s.MerchantAddress, s.MerchantName, s.UserID, s.CreatedAt, s.UpdatedAt)

	if err := row.Scan(&s.SaleID); err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// Search filters sales by an OR-substring match over saleSearchColumns,
// windowed by page/size. The page parameter is 1-based.
func (r *SaleRepository) Search(ctx context.Context, q dbx.Querier, parameter string, page, size *int) (paging.Page[entity.Sale], error) {
	limit, offset := paging.Window(zeroBased(page), size)

	where := ""
	args := []any{}
	if parameter != "" {
		clause, arg := search.SubstringOrFilter(saleSearchColumns, parameter, 1)
		where = " WHERE " + clause
		args = append(args, arg)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM sales`+where, args...).Scan(&total); err != nil {
		return paging.Page[entity.Sale]{}, err
	}

	sql := selectSale + where +
		fmt.Sprintf(" ORDER BY sale_id ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := q.Query(ctx, sql, append(args, limit, offset)...)
	if err != nil {
		return paging.Page[entity.Sale]{}, err
	}
	defer rows.Close()

	items := []entity.Sale{}
	for rows.Next() {
		s, err := scanSaleRow(rows)
		if err != nil {
			return paging.Page[entity.Sale]{}, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[entity.Sale]{}, err
	}

	return paging.NewPage(items, total, page, limit), nil
}

func (r *SaleRepository) FindByID(ctx context.Context, q dbx.Querier, id int64) (*entity.Sale, error) {
	return scanSale(q.QueryRow(ctx, selectSale+` WHERE sale_id = $1`, id))
}

func (r *SaleRepository) FindOne(ctx context.Context, q dbx.Querier, conds []search.Equality) (*entity.Sale, error) {
	clause, args, err := search.EqualityClause(conds, saleFilterColumns, 1)
	if err != nil {
		return nil, err
	}
	sql := selectSale
	if clause != "" {
		sql += ` WHERE ` + clause
	}
	return scanSale(q.QueryRow(ctx, sql+` LIMIT 1`, args...))
}

func (r *SaleRepository) Update(ctx context.Context, q dbx.Querier, id int64, s *entity.Sale) (*entity.Sale, error) {
	existing, err := r.FindByID(ctx, q, id)
	if err != nil {
		return nil, err
	}

	_, err = q.Exec(ctx, `
		UPDATE sales SET purchaser_name = $1, item_description = $2, item_price = $3,
		       purchase_count = $4, merchant_address = $5, merchant_name = $6, updated_at = $7
		WHERE sale_id = $8
	`, s.PurchaserName, s.ItemDescription, s.ItemPrice, s.PurchaseCount,
		s.MerchantAddress, s.MerchantName, s.UpdatedAt, id)
	if err != nil {
		return nil, err
	}

	existing.PurchaserName = s.PurchaserName
	existing.ItemDescription = s.ItemDescription
	existing.ItemPrice = s.ItemPrice
	existing.PurchaseCount = s.PurchaseCount
	existing.MerchantAddress = s.MerchantAddress
	existing.MerchantName = s.MerchantName
	existing.UpdatedAt = s.UpdatedAt
	return existing, nil
}

func (r *SaleRepository) Delete(ctx context.Context, q dbx.Querier, id int64) (*entity.Sale, error) {
	existing, err := r.FindByID(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if _, err := q.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1`, id); err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *SaleRepository) DeleteAll(ctx context.Context, q dbx.Querier) error {
	_, err := q.Exec(ctx, `DELETE FROM sales`)
	return err
}

func (r *SaleRepository) Count(ctx context.Context, q dbx.Querier) (int64, error) {
	var n int64
	err := q.QueryRow(ctx, `SELECT COUNT(sale_id) FROM sales`).Scan(&n)
	return n, err
}

func (r *SaleRepository) CountPurchasedItems(ctx context.Context, q dbx.Querier) (int64, error) {
	var n int64
	err := q.QueryRow(ctx, `SELECT COALESCE(SUM(purchase_count), 0) FROM sales`).Scan(&n)
	return n, err
}

// GrossRevenue sums item_price * purchase_count per row. The legacy query
// multiplied one row's purchase_count by the global price sum instead; see
// DESIGN.md for the decision to compute the intended figure.
func (r *SaleRepository) GrossRevenue(ctx context.Context, q dbx.Querier) (float64, error) {
	var total float64
	err := q.QueryRow(ctx, `SELECT COALESCE(SUM(item_price * purchase_count), 0) FROM sales`).Scan(&total)
	return total, err
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	s := &entity.Sale{}
	if err := row.Scan(&s.SaleID, &s.PurchaserName, &s.ItemDescription, &s.ItemPrice,
		&s.PurchaseCount, &s.MerchantAddress, &s.MerchantName, &s.UserID,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func scanSaleRow(rows pgx.Rows) (*entity.Sale, error) {
	s := &entity.Sale{}
	if err := rows.Scan(&s.SaleID, &s.PurchaserName, &s.ItemDescription, &s.ItemPrice,
		&s.PurchaseCount, &s.MerchantAddress, &s.MerchantName, &s.UserID,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

var _ repository.SaleRepository = (*SaleRepository)(nil)
