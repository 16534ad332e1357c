package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds row locking on dialects that support it. SQLite serializes
// writers on its own, and rejects FOR UPDATE syntax.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
