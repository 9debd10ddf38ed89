package entity

// Part identifies a physical piece. Color matters: the same mold in two
// colors is two distinct parts for inventory purposes.
type Part struct {
	PartNo  string `json:"part_no"`
	ColorID int    `json:"color_id"`
	Name    string `json:"name"`
}
