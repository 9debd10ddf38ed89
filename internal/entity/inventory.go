package entity

// PieceState tracks ownership of a part quantity. OWNED_LOCKED means the
// pieces are built into an assembled set; OWNED_FREE means they are loose.
type PieceState string

const (
	StateMissing     PieceState = "MISSING"
	StateOwnedLocked PieceState = "OWNED_LOCKED"
	StateOwnedFree   PieceState = "OWNED_FREE"
)

func (s PieceState) Valid() bool {
	switch s {
	case StateMissing, StateOwnedLocked, StateOwnedFree:
		return true
	}
	return false
}

// InventoryItem is one owned part line. There is at most one row per
// (set_no, part_no, color_id) triple; repeated adds increment Qty.
type InventoryItem struct {
	SetNo   string     `json:"set_no"`
	PartNo  string     `json:"part_no"`
	ColorID int        `json:"color_id"`
	Qty     int        `json:"qty"`
	State   PieceState `json:"state"`
}
