package inventory

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLedger is a single-threaded StockLedger used to exercise ApplyMovement
type memoryLedger struct {
	counters  map[string]*StockCounter
	movements []*InventoryMovement
	setErr    error
	appendErr error
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{counters: make(map[string]*StockCounter)}
}

func ledgerKey(subject Subject, branchID uuid.UUID) string {
	return subject.Key().String() + "/" + branchID.String()
}

func (l *memoryLedger) GetCounter(_ context.Context, subject Subject, branchID uuid.UUID) (*StockCounter, error) {
	c, ok := l.counters[ledgerKey(subject, branchID)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (l *memoryLedger) EnsureCounter(ctx context.Context, subject Subject, branchID uuid.UUID) (*StockCounter, error) {
	if _, ok := l.counters[ledgerKey(subject, branchID)]; !ok {
		c, err := NewStockCounter(subject, branchID, 0)
		if err != nil {
			return nil, err
		}
		l.counters[ledgerKey(subject, branchID)] = c
	}
	return l.GetCounter(ctx, subject, branchID)
}

func (l *memoryLedger) SetCounterValue(_ context.Context, counterID uuid.UUID, stock int64) error {
	if l.setErr != nil {
		return l.setErr
	}
	for _, c := range l.counters {
		if c.ID == counterID {
			c.Stock = stock
			return nil
		}
	}
	return shared.ErrNotFound
}

func (l *memoryLedger) AppendMovement(_ context.Context, m *InventoryMovement) error {
	if l.appendErr != nil {
		return l.appendErr
	}
	l.movements = append(l.movements, m)
	return nil
}

func (l *memoryLedger) seed(t *testing.T, subject Subject, branchID uuid.UUID, stock int64) {
	t.Helper()
	c, err := NewStockCounter(subject, branchID, stock)
	require.NoError(t, err)
	l.counters[ledgerKey(subject, branchID)] = c
}

func TestSubject(t *testing.T) {
	productID, variantID := uuid.New(), uuid.New()

	plain := ProductSubject(productID)
	assert.False(t, plain.IsVariant())
	assert.Equal(t, productID, plain.Key())

	variant := VariantSubject(productID, variantID)
	assert.True(t, variant.IsVariant())
	assert.Equal(t, variantID, variant.Key())

	assert.Error(t, Subject{}.Validate())
	assert.Error(t, VariantSubject(productID, uuid.Nil).Validate())
}

func TestNewStockCounter(t *testing.T) {
	productID, branchID := uuid.New(), uuid.New()

	c, err := NewStockCounter(ProductSubject(productID), branchID, 7)
	require.NoError(t, err)
	assert.Equal(t, productID, c.SubjectID)
	assert.Equal(t, int64(7), c.Stock)
	assert.Equal(t, ProductSubject(productID), c.Subject())

	_, err = NewStockCounter(ProductSubject(productID), branchID, -1)
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = NewStockCounter(ProductSubject(productID), uuid.Nil, 0)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestMovementKind_Apply(t *testing.T) {
	assert.Equal(t, int64(13), MovementIn.Apply(10, 3))
	assert.Equal(t, int64(7), MovementOut.Apply(10, 3))
	assert.Equal(t, int64(-1), MovementOut.Apply(2, 3))
	assert.Equal(t, int64(3), MovementSet.Apply(10, 3))
	assert.True(t, MovementSet.IsValid())
	assert.False(t, MovementKind("ADJUST").IsValid())
}

func TestMovementCommand_Validate(t *testing.T) {
	valid := MovementCommand{
		Subject:  ProductSubject(uuid.New()),
		BranchID: uuid.New(),
		Kind:     MovementIn,
		Quantity: 1,
		Reason:   "restock",
		ActorID:  uuid.New(),
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*MovementCommand)
		msg    string
	}{
		{"missing branch", func(c *MovementCommand) { c.BranchID = uuid.Nil }, "branch"},
		{"missing actor", func(c *MovementCommand) { c.ActorID = uuid.Nil }, "actor"},
		{"unknown kind", func(c *MovementCommand) { c.Kind = "MOVE" }, "invalid movement kind"},
		{"zero quantity", func(c *MovementCommand) { c.Quantity = 0 }, "positive"},
		{"negative out", func(c *MovementCommand) { c.Kind = MovementOut; c.Quantity = -2 }, "positive"},
		{"negative set", func(c *MovementCommand) { c.Kind = MovementSet; c.Quantity = -1 }, "below zero"},
		{"blank reason", func(c *MovementCommand) { c.Reason = "   " }, "reason is required"},
		{"long reason", func(c *MovementCommand) { c.Reason = strings.Repeat("x", MaxReasonLength+1) }, "exceed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)
			err := cmd.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrValidation))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	set := valid
	set.Kind = MovementSet
	set.Quantity = 0
	assert.NoError(t, set.Validate())
}

func TestApplyMovement(t *testing.T) {
	ctx := context.Background()
	productID, branchID, actor := uuid.New(), uuid.New(), uuid.New()
	subject := ProductSubject(productID)

	cmd := func(kind MovementKind, qty int64) MovementCommand {
		return MovementCommand{Subject: subject, BranchID: branchID, Kind: kind, Quantity: qty, Reason: " test ", ActorID: actor}
	}

	t.Run("out then insufficient", func(t *testing.T) {
		ledger := newMemoryLedger()
		ledger.seed(t, subject, branchID, 10)

		res, err := ApplyMovement(ctx, ledger, cmd(MovementOut, 4))
		require.NoError(t, err)
		assert.Equal(t, int64(6), res.Counter.Stock)
		assert.Equal(t, int64(10), res.StockBefore)
		require.Len(t, ledger.movements, 1)
		m := ledger.movements[0]
		assert.Equal(t, MovementOut, m.Kind)
		assert.Equal(t, int64(4), m.Quantity)
		assert.Equal(t, int64(10), m.StockBefore)
		assert.Equal(t, int64(6), m.StockAfter)
		assert.Equal(t, "test", m.Reason)
		assert.Equal(t, actor, m.UserID)

		_, err = ApplyMovement(ctx, ledger, cmd(MovementOut, 10))
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
		assert.Contains(t, err.Error(), "available 6, requested 10")

		current, err := ledger.GetCounter(ctx, subject, branchID)
		require.NoError(t, err)
		assert.Equal(t, int64(6), current.Stock)
		assert.Len(t, ledger.movements, 1)
	})

	t.Run("lazily creates counter", func(t *testing.T) {
		ledger := newMemoryLedger()

		res, err := ApplyMovement(ctx, ledger, cmd(MovementIn, 5))
		require.NoError(t, err)
		assert.Equal(t, int64(5), res.Counter.Stock)
		assert.Equal(t, int64(0), res.StockBefore)
	})

	t.Run("out against a missing counter fails", func(t *testing.T) {
		ledger := newMemoryLedger()

		_, err := ApplyMovement(ctx, ledger, cmd(MovementOut, 1))
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
		assert.Empty(t, ledger.movements)
	})

	t.Run("set replaces stock", func(t *testing.T) {
		ledger := newMemoryLedger()
		ledger.seed(t, subject, branchID, 10)

		res, err := ApplyMovement(ctx, ledger, cmd(MovementSet, 0))
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.Counter.Stock)

		ev := res.Event()
		assert.Equal(t, EventTypeStockChanged, ev.EventType())
		assert.Equal(t, res.Counter.ID, ev.AggregateID())
		assert.Equal(t, int64(10), ev.StockBefore)
		assert.Equal(t, int64(0), ev.StockAfter)
	})

	t.Run("inbound overflow is a validation error", func(t *testing.T) {
		ledger := newMemoryLedger()
		ledger.seed(t, subject, branchID, 5)

		_, err := ApplyMovement(ctx, ledger, cmd(MovementIn, math.MaxInt64))
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.False(t, errors.Is(err, shared.ErrInsufficientStock))

		current, err := ledger.GetCounter(ctx, subject, branchID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), current.Stock)
		assert.Empty(t, ledger.movements)

		res, err := ApplyMovement(ctx, ledger, cmd(MovementIn, math.MaxInt64-5))
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), res.Counter.Stock)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		ledger := newMemoryLedger()
		ledger.appendErr = errors.New("disk full")

		_, err := ApplyMovement(ctx, ledger, cmd(MovementIn, 1))
		assert.EqualError(t, err, "disk full")
	})

	t.Run("invalid command never touches the ledger", func(t *testing.T) {
		ledger := newMemoryLedger()

		_, err := ApplyMovement(ctx, ledger, cmd(MovementIn, 0))
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.Empty(t, ledger.counters)
	})
}

func TestApplyMovement_NeverNegative(t *testing.T) {
	ctx := context.Background()
	subject := ProductSubject(uuid.New())
	branchID := uuid.New()
	ledger := newMemoryLedger()

	steps := []struct {
		kind MovementKind
		qty  int64
	}{
		{MovementIn, 3}, {MovementOut, 2}, {MovementOut, 2}, {MovementSet, 4},
		{MovementOut, 5}, {MovementOut, 4}, {MovementOut, 1}, {MovementIn, 1},
	}
	committed := 0
	for _, s := range steps {
		res, err := ApplyMovement(ctx, ledger, MovementCommand{
			Subject: subject, BranchID: branchID, Kind: s.kind, Quantity: s.qty, Reason: "seq", ActorID: uuid.New(),
		})
		if err == nil {
			committed++
			assert.Equal(t, s.kind.Apply(res.StockBefore, s.qty), res.Counter.Stock)
		}
		c, getErr := ledger.GetCounter(ctx, subject, branchID)
		require.NoError(t, getErr)
		assert.GreaterOrEqual(t, c.Stock, int64(0))
	}
	assert.Len(t, ledger.movements, committed)
	for _, m := range ledger.movements {
		assert.Equal(t, m.Kind.Apply(m.StockBefore, m.Quantity), m.StockAfter)
	}
}
