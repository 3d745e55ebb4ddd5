package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the authenticated user on whose behalf a core operation runs.
// Every mutation takes one explicitly; there is no ambient current user.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// Scope returns the owner filter for repository reads: admins see every
// catalog, everyone else only their own.
func (a Actor) Scope() uuid.UUID {
	if a.Role == "admin" {
		return uuid.Nil
	}
	return a.ID
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
