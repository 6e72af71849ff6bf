package posting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treefnio/internal/core/entity"
	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
	"treefnio/internal/domain/audit"
	"treefnio/internal/domain/documents/material_receipt"
	"treefnio/internal/domain/documents/sale_batch"
	"treefnio/internal/domain/posting"
	"treefnio/internal/domain/registers/stock"
)

// passthroughTx runs the function directly; rollback semantics are the
// database's job and are not simulated here.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memStockRepo keeps movements in memory and mimics the version-based
// cleanup the real repository performs.
type memStockRepo struct {
	movements []entity.StockMovement
}

func (r *memStockRepo) CreateMovements(_ context.Context, movements []entity.StockMovement) error {
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *memStockRepo) DeleteMovementsByRecorder(_ context.Context, recorderID id.ID, beforeVersion int) error {
	kept := r.movements[:0]
	for _, m := range r.movements {
		if m.RecorderID == recorderID && m.RecorderVersion < beforeVersion {
			continue
		}
		kept = append(kept, m)
	}
	r.movements = kept
	return nil
}

func (r *memStockRepo) GetMovementsByRecorder(_ context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.movements {
		if m.RecorderID == recorderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memStockRepo) GetBalance(_ context.Context, materialID id.ID) (entity.StockBalance, error) {
	balance := entity.StockBalance{MaterialID: materialID, Amount: types.Zero()}
	for _, m := range r.movements {
		if m.MaterialID == materialID {
			balance.Quantity += m.SignedQuantity()
		}
	}
	return balance, nil
}

func (r *memStockRepo) GetBalanceForUpdate(ctx context.Context, materialID id.ID) (entity.StockBalance, error) {
	return r.GetBalance(ctx, materialID)
}

func (r *memStockRepo) GetBalances(context.Context, stock.BalanceFilter) ([]entity.StockBalance, error) {
	return nil, nil
}

func (r *memStockRepo) GetMovementHistory(context.Context, id.ID, stock.MovementFilter) ([]entity.StockMovement, error) {
	return nil, nil
}

func (r *memStockRepo) GetTurnover(context.Context, stock.TurnoverFilter) (stock.Turnover, error) {
	return stock.Turnover{}, nil
}

func (r *memStockRepo) RecalculateBalances(context.Context, *id.ID) error {
	return nil
}

// memAuditLog collects audit entries for assertions.
type memAuditLog struct {
	entries []audit.Entry
}

func (l *memAuditLog) Log(_ context.Context, entry audit.Entry) error {
	l.entries = append(l.entries, entry)
	return nil
}

func newTestEngine() (*posting.Engine, *memStockRepo, *memAuditLog) {
	repo := &memStockRepo{}
	auditLog := &memAuditLog{}
	engine := posting.NewEngine(passthroughTx{}, stock.NewService(repo), auditLog)
	return engine, repo, auditLog
}

func testReceipt(t *testing.T, lines int) *material_receipt.MaterialReceipt {
	t.Helper()
	doc := material_receipt.NewMaterialReceipt()
	doc.Number = "MR-1"
	for i := 0; i < lines; i++ {
		doc.AddLine(id.New(), types.NewQuantityFromFloat64(2.5), types.MustMoney("100"))
	}
	return doc
}

func noopUpdate(context.Context) error { return nil }

func TestEngine_Post_RecordsReceiptMovements(t *testing.T) {
	engine, repo, auditLog := newTestEngine()
	doc := testReceipt(t, 2)

	err := engine.Post(context.Background(), doc, noopUpdate)
	require.NoError(t, err)

	assert.True(t, doc.Posted)
	assert.Equal(t, 1, doc.PostedVersion)

	require.Len(t, repo.movements, 2)
	for _, m := range repo.movements {
		assert.Equal(t, doc.ID, m.RecorderID)
		assert.Equal(t, "MaterialReceipt", m.RecorderType)
		assert.Equal(t, 1, m.RecorderVersion)
		assert.Equal(t, entity.RecordTypeReceipt, m.RecordType)
	}

	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, audit.ActionPost, auditLog.entries[0].Action)
	assert.Equal(t, doc.ID, auditLog.entries[0].EntityID)
}

func TestEngine_Post_UpdateDocRunsInsideTransaction(t *testing.T) {
	engine, _, _ := newTestEngine()
	doc := testReceipt(t, 1)

	called := false
	err := engine.Post(context.Background(), doc, func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestEngine_Repost_ReplacesOlderVersions(t *testing.T) {
	engine, repo, _ := newTestEngine()
	doc := testReceipt(t, 1)

	require.NoError(t, engine.Post(context.Background(), doc, noopUpdate))
	require.NoError(t, engine.Post(context.Background(), doc, noopUpdate))

	assert.Equal(t, 2, doc.PostedVersion)
	require.Len(t, repo.movements, 1)
	assert.Equal(t, 2, repo.movements[0].RecorderVersion)
}

func TestEngine_Unpost_RemovesAllMovements(t *testing.T) {
	engine, repo, auditLog := newTestEngine()
	doc := testReceipt(t, 3)

	require.NoError(t, engine.Post(context.Background(), doc, noopUpdate))
	require.NoError(t, engine.Unpost(context.Background(), doc, noopUpdate))

	assert.False(t, doc.Posted)
	assert.Empty(t, repo.movements)

	require.Len(t, auditLog.entries, 2)
	assert.Equal(t, audit.ActionUnpost, auditLog.entries[1].Action)
}

func TestEngine_Unpost_NotPostedFails(t *testing.T) {
	engine, _, _ := newTestEngine()
	doc := testReceipt(t, 1)

	err := engine.Unpost(context.Background(), doc, noopUpdate)
	assert.Error(t, err)
}

func TestEngine_Post_NilAuditLogger(t *testing.T) {
	repo := &memStockRepo{}
	engine := posting.NewEngine(passthroughTx{}, stock.NewService(repo), nil)
	doc := testReceipt(t, 1)

	err := engine.Post(context.Background(), doc, noopUpdate)
	require.NoError(t, err)
	assert.Len(t, repo.movements, 1)
}

func TestEngine_Post_SaleBatchWritesExpenses(t *testing.T) {
	engine, repo, _ := newTestEngine()

	materialID := id.New()
	batch := sale_batch.NewSaleBatch("1402/05/01")
	batch.Number = "SB-1"
	batch.SetConsumption([]sale_batch.MaterialConsumption{
		{MaterialID: materialID, Quantity: types.NewQuantityFromFloat64(4), Amount: types.MustMoney("320")},
	})

	err := engine.Post(context.Background(), batch, noopUpdate)
	require.NoError(t, err)

	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	assert.Equal(t, entity.RecordTypeExpense, m.RecordType)
	assert.Equal(t, "SaleBatch", m.RecorderType)
	assert.Equal(t, materialID, m.MaterialID)
	assert.Equal(t, types.NewQuantityFromFloat64(-4), m.SignedQuantity())

	balance, err := repo.GetBalance(context.Background(), materialID)
	require.NoError(t, err)
	assert.Equal(t, types.NewQuantityFromFloat64(-4), balance.Quantity)
}
