package application

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/terrasapp/sales-api/internal/dbx"
	"github.com/terrasapp/sales-api/internal/domain/entity"
	"github.com/terrasapp/sales-api/pkg/paging"
	"github.com/terrasapp/sales-api/pkg/search"
)

// fakeTx only tracks its own outcome; the embedded pgx.Tx is never touched.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

// fakeDB satisfies dbx.DB. The direct query methods are unused because the
// fake repositories ignore their Querier; only Begin matters here.
type fakeDB struct {
	tx *fakeTx
}

func newFakeDB() *fakeDB { return &fakeDB{tx: &fakeTx{}} }

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return d.tx, nil }

func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

// fakeUserRepo dispatches to optional function fields and records the Querier
// each mutating call was handed, so tests can assert writes stay on the
// transaction.
type fakeUserRepo struct {
	createFn  func(u *entity.User) error
	updateFn  func(id int64, u *entity.User) (*entity.User, error)
	deleteFn  func(id int64) (*entity.User, error)
	findOneFn func(conds []search.Equality) (*entity.User, error)
	findFn    func(id int64) (*entity.User, error)
	countFn   func() (int64, error)

	writeQueriers []dbx.Querier
	deleteAllErr  error
}

func (r *fakeUserRepo) Create(ctx context.Context, q dbx.Querier, u *entity.User) error {
	r.writeQueriers = append(r.writeQueriers, q)
	return r.createFn(u)
}

func (r *fakeUserRepo) Search(ctx context.Context, q dbx.Querier, parameter string, page, size *int) (paging.Page[entity.UserWithSales], error) {
	return paging.Page[entity.UserWithSales]{}, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, q dbx.Querier, id int64) (*entity.User, error) {
	return r.findFn(id)
}

func (r *fakeUserRepo) FindOne(ctx context.Context, q dbx.Querier, conds []search.Equality) (*entity.User, error) {
	return r.findOneFn(conds)
}

func (r *fakeUserRepo) Update(ctx context.Context, q dbx.Querier, id int64, u *entity.User) (*entity.User, error) {
	r.writeQueriers = append(r.writeQueriers, q)
	return r.updateFn(id, u)
}

func (r *fakeUserRepo) Delete(ctx context.Context, q dbx.Querier, id int64) (*entity.User, error) {
	r.writeQueriers = append(r.writeQueriers, q)
	return r.deleteFn(id)
}

func (r *fakeUserRepo) DeleteAll(ctx context.Context, q dbx.Querier) error {
	r.writeQueriers = append(r.writeQueriers, q)
	return r.deleteAllErr
}

func (r *fakeUserRepo) Count(ctx context.Context, q dbx.Querier) (int64, error) {
	return r.countFn()
}

// fakeSaleRepo mirrors fakeUserRepo for sales.
type fakeSaleRepo struct {
	createFn func(s *entity.Sale) error
	updateFn func(id int64, s *entity.Sale) (*entity.Sale, error)
	deleteFn func(id int64) (*entity.Sale, error)
	findFn   func(id int64) (*entity.Sale, error)

	writeQueriers []dbx.Querier
	created       []entity.Sale
	deleteAllErr  error

	totalSales     int64
	purchasedItems int64
	grossRevenue   float64
	aggregateErr   error
}

func (r *fakeSaleRepo) Create(ctx context.Context, q dbx.Querier, s *entity.Sale) error {
	r.writeQueriers = append(r.writeQueriers, q)
	if r.createFn != nil {
		if err := r.createFn(s); err != nil {
			return err
		}
	}
	r.created = append(r.created, *s)
	return nil
}

func (r *fakeSaleRepo) Search(ctx context.Context, q dbx.Querier, parameter string, page, size *int) (paging.Page[entity.Sale], error) {
	return paging.Page[entity.Sale]{}, nil
}

func (r *fakeSaleRepo) FindByID(ctx context.Context, q dbx.Querier, id int64) (*entity.Sale, error) {
	return r.findFn(id)
}

func (r *fakeSaleRepo) FindOne(ctx context.Context, q dbx.Querier, conds []search.Equality) (*entity.Sale, error) {
	return nil, nil
}

func (r *fakeSaleRepo) Update(ctx context.Context, q dbx.Querier, id int64, s *entity.Sale) (*entity.Sale, error) {
	r.writeQueriers = append(r.writeQueriers, q)
	return r.updateFn(id, s)
}

func (r *fakeSaleRepo) Delete(ctx context.Context, q dbx.Querier, id int64) (*entity.Sale, error) {
	r.writeQueriers = append(r.writeQueriers, q)
	return r.deleteFn(id)
}

func (r *fakeSaleRepo) DeleteAll(ctx context.Context, q dbx.Querier) error {
	r.writeQueriers = append(r.writeQueriers, q)
	return r.deleteAllErr
}

func (r *fakeSaleRepo) Count(ctx context.Context, q dbx.Querier) (int64, error) {
	return r.totalSales, r.aggregateErr
}

func (r *fakeSaleRepo) CountPurchasedItems(ctx context.Context, q dbx.Querier) (int64, error) {
	return r.purchasedItems, r.aggregateErr
}

func (r *fakeSaleRepo) GrossRevenue(ctx context.Context, q dbx.Querier) (float64, error) {
	return r.grossRevenue, r.aggregateErr
}

// fakeMail records the last recovery mail request.
type fakeMail struct {
	name, mail, login, password string
	calls                       int
	err                         error
}

func (m *fakeMail) SendRecoveredPassword(ctx context.Context, name, mail, login, password string) error {
	m.calls++
	m.name, m.mail, m.login, m.password = name, mail, login, password
	return m.err
}
