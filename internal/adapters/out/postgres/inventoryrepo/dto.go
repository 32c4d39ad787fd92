// Package inventoryrepo provides data transfer objects and mapping functions
// for the stock ledger. One row tracks one product at one branch.
package inventoryrepo

import (
	"ferremas/internal/core/domain/model/inventory"
	"ferremas/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting stock ledger
// entries, keyed by (product, branch).
type EntryDTO struct {
	ProductID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	TotalStock    int
	ReservedStock int
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "inventory_entries"
}

// fromDomain converts a ledger entry aggregate to its database representation.
func fromDomain(entry *inventory.Entry) EntryDTO {
	return EntryDTO{
		ProductID:     entry.ProductID().Bytes(),
		BranchID:      entry.BranchID().Bytes(),
		TotalStock:    entry.TotalStock(),
		ReservedStock: entry.ReservedStock(),
	}
}

// toDomain converts a database DTO to a ledger entry aggregate.
func toDomain(dto EntryDTO) (*inventory.Entry, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreEntry(productID, branchID, dto.TotalStock, dto.ReservedStock)
}
