package entity

type LegoSet struct {
	SetNo     string `json:"set_no"`
	Name      string `json:"name"`
	Assembled bool   `json:"assembled"`
}
