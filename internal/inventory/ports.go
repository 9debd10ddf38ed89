package inventory

import (
	"context"

	"brickinv/internal/entity"
)

// Repository defines the contract for inventory storage.
//
// UpsertPart must be atomic per (set_no, part_no, color_id) triple: when the
// triple already exists the quantity is incremented and the state
// overwritten, otherwise a new row is inserted. Concurrent upserts of the
// same triple must not lose increments.
type Repository interface {
	UpsertPart(ctx context.Context, setNo string, part entity.Part, qty int, state entity.PieceState) error
	List(ctx context.Context, state entity.PieceState) ([]entity.InventoryItem, error)
	UpdateItem(ctx context.Context, partNo string, colorID int, qty int, state entity.PieceState) (bool, error)
}
