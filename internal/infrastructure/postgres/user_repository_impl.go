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

// Columns matched by the free-text search filter.
var userSearchColumns = []string{"name", "mail", "login", "status", "created_at", "updated_at"}

// Columns accepted in FindOne equality pairs.
var userFilterColumns = map[string]bool{
	"user_id":  true,
	"name":     true,
	"mail":     true,
	"login":    true,
	"password": true,
	"status":   true,
}

const selectUser = `SELECT user_id, name, mail, login, password, status, created_at, updated_at FROM users`

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, q dbx.Querier, u *entity.User) error {
	row := q.QueryRow(ctx, `
		INSERT INTO users (name, mail, login, password, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id
	`, u.Name, u.Mail, u.Login, u.Password, u.Status, u.CreatedAt, u.UpdatedAt)

	if err := row.Scan(&u.UserID); err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// Search filters users by an OR-substring match over userSearchColumns,
// ordered by name, windowed by page/size. Each row carries the number of
// sales linked to the user. The page parameter is 1-based.
func (r *UserRepository) Search(ctx context.Context, q dbx.Querier, parameter string, page, size *int) (paging.Page[entity.UserWithSales], error) {
	limit, offset := paging.Window(zeroBased(page), size)

	where := ""
	args := []any{}
	if parameter != "" {
		clause, arg := search.SubstringOrFilter(userSearchColumns, parameter, 1)
		where = " WHERE " + clause
		args = append(args, arg)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return paging.Page[entity.UserWithSales]{}, err
	}

	sql := `
		SELECT user_id, name, mail, login, password, status, created_at, updated_at,
		       (SELECT COUNT(s.sale_id) FROM sales s WHERE s.user_id = users.user_id) AS sales_count
		FROM users` + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := q.Query(ctx, sql, append(args, limit, offset)...)
	if err != nil {
		return paging.Page[entity.UserWithSales]{}, err
	}
	defer rows.Close()

	items := []entity.UserWithSales{}
	for rows.Next() {
		var u entity.UserWithSales
		if err := rows.Scan(&u.UserID, &u.Name, &u.Mail, &u.Login, &u.Password,
			&u.Status, &u.CreatedAt, &u.UpdatedAt, &u.SalesCount); err != nil {
			return paging.Page[entity.UserWithSales]{}, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[entity.UserWithSales]{}, err
	}

	return paging.NewPage(items, total, page, limit), nil
}

func (r *UserRepository) FindByID(ctx context.Context, q dbx.Querier, id int64) (*entity.User, error) {
	return scanUser(q.QueryRow(ctx, selectUser+` WHERE user_id = $1`, id))
}

func (r *UserRepository) FindOne(ctx context.Context, q dbx.Querier, conds []search.Equality) (*entity.User, error) {
	clause, args, err := search.EqualityClause(conds, userFilterColumns, 1)
	if err != nil {
		return nil, err
	}
	sql := selectUser
	if clause != "" {
		sql += ` WHERE ` + clause
	}
	return scanUser(q.QueryRow(ctx, sql+` LIMIT 1`, args...))
}

// Update fetches the row by primary key first so a missing user yields
// ErrNotFound before anything is written.
func (r *UserRepository) Update(ctx context.Context, q dbx.Querier, id int64, u *entity.User) (*entity.User, error) {
	existing, err := r.FindByID(ctx, q, id)
	if err != nil {
		return nil, err
	}

	_, err = q.Exec(ctx, `
		UPDATE users SET name = $1, mail = $2, login = $3, password = $4, updated_at = $5
		WHERE user_id = $6
	`, u.Name, u.Mail, u.Login, u.Password, u.UpdatedAt, id)
	if err != nil {
		return nil, mapConstraintError(err)
	}

	existing.Name = u.Name
	existing.Mail = u.Mail
	existing.Login = u.Login
	existing.Password = u.Password
	existing.UpdatedAt = u.UpdatedAt
	return existing, nil
}

// Delete returns the removed row, fetched before deletion.
func (r *UserRepository) Delete(ctx context.Context, q dbx.Querier, id int64) (*entity.User, error) {
	existing, err := r.FindByID(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if _, err := q.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id); err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *UserRepository) DeleteAll(ctx context.Context, q dbx.Querier) error {
	_, err := q.Exec(ctx, `DELETE FROM users`)
	return err
}

func (r *UserRepository) Count(ctx context.Context, q dbx.Querier) (int64, error) {
	var n int64
	err := q.QueryRow(ctx, `SELECT COUNT(user_id) FROM users`).Scan(&n)
	return n, err
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.UserID, &u.Name, &u.Mail, &u.Login, &u.Password,
		&u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// zeroBased converts the 1-based request page to the zero-based page Window
// expects; a missing page stays missing.
func zeroBased(page *int) *int {
	if page == nil {
		return nil
	}
	z := *page - 1
	return &z
}

var _ repository.UserRepository = (*UserRepository)(nil)
