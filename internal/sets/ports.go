package sets

import (
	"context"

	"brickinv/internal/entity"
)

// Repository defines the contract for set storage. SetNo is the unique key.
type Repository interface {
	// Add records a set. The record is written once: adding an existing
	// set number is a no-op, never a merge or an error, so that repeated
	// adds of the same set can still accumulate inventory.
	Add(ctx context.Context, set entity.LegoSet) error
	Get(ctx context.Context, setNo string) (entity.LegoSet, error)
}
