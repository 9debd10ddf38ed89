// Package catalog defines the contract for external LEGO parts catalog
// providers and ships the BrickLink implementation.
package catalog

import "context"

// SetSearchResult is a single hit from a catalog search.
type SetSearchResult struct {
	SetNo    string `json:"set_no"`
	Name     string `json:"name"`
	Year     int    `json:"year,omitempty"`
	Theme    string `json:"theme,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Dimensions of a boxed set, in the provider's units.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SetMetadata is the normalized description of a set. Immutable once
// fetched; cached by set number.
type SetMetadata struct {
	SetNo      string      `json:"set_no"`
	Name       string      `json:"name"`
	Year       int         `json:"year,omitempty"`
	Theme      string      `json:"theme,omitempty"`
	NumParts   int         `json:"num_parts,omitempty"`
	ImageURL   string      `json:"image_url,omitempty"`
	Weight     float64     `json:"weight,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

// InventoryPart is one part line of a set's inventory snapshot.
type InventoryPart struct {
	PartNo        string `json:"part_no"`
	ColorID       int    `json:"color_id"`
	Qty           int    `json:"qty"`
	Name          string `json:"name"`
	IsSpare       bool   `json:"is_spare"`
	IsCounterpart bool   `json:"is_counterpart"`
}

// Service is the catalog provider contract. Implementations translate
// provider failures into the package's sentinel errors so callers can rely
// on errors.Is regardless of provider.
type Service interface {
	SearchSets(ctx context.Context, query string, limit int) ([]SetSearchResult, error)
	FetchSetMetadata(ctx context.Context, setNo string) (SetMetadata, error)
	FetchSetInventory(ctx context.Context, setNo string) ([]InventoryPart, error)
	HealthCheck(ctx context.Context) bool
}
