// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities are free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. ToDomain / FromDomain convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - identity.go: Branch and User
// - catalog.go: Category, Product and ProductVariant
// - inventory.go: StockCounter and InventoryMovement
// - trade.go: Sale and SaleItem
//
// The tags mirror migrations/000001_init.up.sql so AutoMigrate produces an
// equivalent schema for SQLite-backed tests.
package models
