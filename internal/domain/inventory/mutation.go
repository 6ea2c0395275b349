package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// MaxReasonLength bounds the free-text reason of a movement
const MaxReasonLength = 255

// MovementCommand asks for one mutation of one counter
type MovementCommand struct {
	Subject  Subject
	BranchID uuid.UUID
	Kind     MovementKind
	Quantity int64
	Reason   string
	ActorID  uuid.UUID
}

// Validate checks the command before any store access
func (c MovementCommand) Validate() error {
	if err := c.Subject.Validate(); err != nil {
		return err
	}
	if c.BranchID == uuid.Nil {
		return shared.NewValidationError("branch ID is required")
	}
	if c.ActorID == uuid.Nil {
		return shared.NewValidationError("actor is required")
	}
	if !c.Kind.IsValid() {
		return shared.NewValidationError("invalid movement kind %q", string(c.Kind))
	}
	if c.Kind == MovementSet {
		if c.Quantity < 0 {
			return shared.NewValidationError("stock cannot be set below zero")
		}
	} else if c.Quantity <= 0 {
		return shared.NewValidationError("quantity must be positive")
	}
	reason := strings.TrimSpace(c.Reason)
	if reason == "" {
		return shared.NewValidationError("reason is required")
	}
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return shared.NewValidationError("reason cannot exceed %d characters", MaxReasonLength)
	}
	return nil
}

// MovementResult is the outcome of a committed mutation
type MovementResult struct {
	Counter     *StockCounter
	Movement    *InventoryMovement
	StockBefore int64
}

// Event returns the domain event describing the mutation
func (r *MovementResult) Event() *StockChangedEvent {
	return NewStockChangedEvent(r.Movement)
}

// NewInsufficientStockError describes a mutation that would take stock below zero
func NewInsufficientStockError(available, requested int64) *shared.DomainError {
	return shared.NewDomainError(shared.CodeInsufficientStock,
		fmt.Sprintf("insufficient stock: available %d, requested %d", available, requested))
}

// ApplyMovement applies cmd to the counter of its subject at its branch and
// records the movement. It must run inside a transaction: the counter is read
// under a row lock by EnsureCounter and nothing is written when the result
// would be negative.
func ApplyMovement(ctx context.Context, ledger StockLedger, cmd MovementCommand) (*MovementResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	cmd.Reason = strings.TrimSpace(cmd.Reason)

	counter, err := ledger.EnsureCounter(ctx, cmd.Subject, cmd.BranchID)
	if err != nil {
		return nil, err
	}

	before := counter.Stock
	if cmd.Kind == MovementIn && before > math.MaxInt64-cmd.Quantity {
		return nil, shared.NewValidationError("quantity %d would overflow stock %d", cmd.Quantity, before)
	}
	after := cmd.Kind.Apply(before, cmd.Quantity)
	if after < 0 {
		return nil, NewInsufficientStockError(before, cmd.Quantity)
	}

	if err := ledger.SetCounterValue(ctx, counter.ID, after); err != nil {
		return nil, err
	}
	counter.Stock = after
	counter.Touch()

	movement := newMovement(counter, cmd, before, after)
	if err := ledger.AppendMovement(ctx, movement); err != nil {
		return nil, err
	}

	return &MovementResult{
		Counter:     counter,
		Movement:    movement,
		StockBefore: before,
	}, nil
}
