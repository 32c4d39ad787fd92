package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"ferremas/internal/core/domain/model/inventory"
	"ferremas/internal/core/domain/model/kernel"
	"ferremas/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM stock ledger repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new ledger entry to the database.
func (r *GormInventoryRepository) Add(ctx context.Context, aggregate *inventory.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ProductID(), aggregate)
	return nil
}

// Update saves the stock counters of an existing ledger entry. Select lists
// both counters explicitly so a zero value is still written.
func (r *GormInventoryRepository) Update(ctx context.Context, aggregate *inventory.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("product_id = ? AND branch_id = ?", dto.ProductID, dto.BranchID).
		Select("TotalStock", "ReservedStock").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ProductID(), aggregate)
	return nil
}

// Get retrieves the ledger entry for a product at a branch. The row is
// locked FOR UPDATE; callers that lock several entries must request them in
// ascending product id order.
func (r *GormInventoryRepository) Get(
	ctx context.Context,
	productID kernel.UUID,
	branchID kernel.UUID,
) (*inventory.Entry, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if err := branchID.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "product_id = ? AND branch_id = ?", productID.Bytes(), branchID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(
				"productId",
				fmt.Sprintf("%s@%s", productID.String(), branchID.String()),
			)
		}
		return nil, err
	}

	return toDomain(dto)
}
