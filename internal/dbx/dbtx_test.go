package dbx

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records commit/rollback calls; the embedded pgx.Tx is never touched.
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

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeBeginner{tx: tx}

	called := false
	err := WithTx(context.Background(), db, func(ctx context.Context, got pgx.Tx) error {
		called = true
		assert.Same(t, tx, got)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeBeginner{tx: tx}

	boom := errors.New("boom")
	err := WithTx(context.Background(), db, func(ctx context.Context, _ pgx.Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestWithTx_RollsBackAndRethrowsOnPanic(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeBeginner{tx: tx}

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithTx(context.Background(), db, func(ctx context.Context, _ pgx.Tx) error {
			panic("kaboom")
		})
	})
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestWithTx_BeginErrorPropagates(t *testing.T) {
	boom := errors.New("no connection")
	db := &fakeBeginner{beginErr: boom}

	err := WithTx(context.Background(), db, func(ctx context.Context, _ pgx.Tx) error {
		t.Fatal("fn must not run when Begin fails")
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
