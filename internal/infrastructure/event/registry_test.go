package event

import (
	"testing"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_Register(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newTestHandler()

	registry.Register(handler, inventory.EventTypeStockChanged, catalog.EventTypeProductChanged)

	assert.Len(t, registry.GetHandlers(inventory.EventTypeStockChanged), 1)
	assert.Len(t, registry.GetHandlers(catalog.EventTypeProductChanged), 1)
	assert.Empty(t, registry.GetHandlers("other"))
}

func TestHandlerRegistry_RegisterTwiceDeliversOnce(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newTestHandler()

	registry.Register(handler, inventory.EventTypeStockChanged)
	registry.Register(handler, inventory.EventTypeStockChanged)
	registry.Register(handler)

	assert.Len(t, registry.GetHandlers(inventory.EventTypeStockChanged), 1)
	assert.Len(t, registry.GetHandlers("other"), 1)
}

func TestHandlerRegistry_OrderTypedBeforeWildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := newTestHandler()
	first := newTestHandler()
	second := newTestHandler()

	registry.Register(wildcard)
	registry.Register(first, inventory.EventTypeStockChanged)
	registry.Register(second, inventory.EventTypeStockChanged)

	handlers := registry.GetHandlers(inventory.EventTypeStockChanged)
	assert.Len(t, handlers, 3)
	assert.Same(t, first, handlers[0])
	assert.Same(t, second, handlers[1])
	assert.Same(t, wildcard, handlers[2])
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	kept := newTestHandler()
	removed := newTestHandler()

	registry.Register(kept, inventory.EventTypeStockChanged)
	registry.Register(removed, inventory.EventTypeStockChanged, catalog.EventTypeProductChanged)
	registry.Register(removed)

	registry.Unregister(removed)

	handlers := registry.GetHandlers(inventory.EventTypeStockChanged)
	assert.Len(t, handlers, 1)
	assert.Same(t, kept, handlers[0])
	assert.Empty(t, registry.GetHandlers(catalog.EventTypeProductChanged))
	_, stillKeyed := registry.byType[catalog.EventTypeProductChanged]
	assert.False(t, stillKeyed)
}
