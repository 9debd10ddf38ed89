package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"brickinv/internal/platform/oauthclient"
)

// Client is the slice of the signed HTTP client the adapter needs.
type Client interface {
	GetJSON(ctx context.Context, rawURL string, query url.Values, v any) error
	HealthCheck(ctx context.Context, rawURL string) bool
}

const defaultBaseURL = "https://api.bricklink.com/api/store/v1"

// healthProbeSetNo is a long-lived catalog entry used for reachability checks.
const healthProbeSetNo = "75192-1"

// BricklinkOptions tunes the adapter's caches. Inventory payloads are larger
// and far more stable than metadata, so the inventory cache holds half as
// many entries but keeps them seven times longer.
type BricklinkOptions struct {
	BaseURL   string
	CacheTTL  time.Duration // metadata TTL; zero means 24h
	CacheSize int           // metadata capacity; zero means 100
}

// Bricklink implements Service against the BrickLink store API v3.
type Bricklink struct {
	client         Client
	baseURL        string
	metadataCache  *expirable.LRU[string, SetMetadata]
	inventoryCache *expirable.LRU[string, []InventoryPart]
	log            *zap.Logger
}

func NewBricklink(client Client, opts BricklinkOptions, logger *zap.Logger) *Bricklink {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 100
	}
	return &Bricklink{
		client:         client,
		baseURL:        opts.BaseURL,
		metadataCache:  expirable.NewLRU[string, SetMetadata](opts.CacheSize, nil, opts.CacheTTL),
		inventoryCache: expirable.NewLRU[string, []InventoryPart](opts.CacheSize/2, nil, opts.CacheTTL*7),
		log:            logger,
	}
}

// Wire shapes for the BrickLink API.

type blItem struct {
	Type string `json:"type"`
	No   string `json:"no"`
	Name string `json:"name"`
}

type blItemData struct {
	No           string      `json:"no"`
	Name         string      `json:"name"`
	YearReleased int         `json:"year_released"`
	CategoryName string      `json:"category_name"`
	ImageURL     string      `json:"image_url"`
	ThumbnailURL string      `json:"thumbnail_url"`
	Weight       float64     `json:"weight"`
	Dim          *Dimensions `json:"dim"`
}

type blSubsetEntry struct {
	Item          blItem `json:"item"`
	ColorID       int    `json:"color_id"`
	Quantity      int    `json:"quantity"`
	IsAlternate   bool   `json:"is_alternate"`
	IsCounterpart bool   `json:"is_counterpart"`
}

// SearchSets queries the catalog item listing and truncates to limit on the
// client side. BrickLink has no usable text search, so the limit is not
// forwarded to the provider; this is a known provider limitation.
func (b *Bricklink) SearchSets(ctx context.Context, query string, limit int) ([]SetSearchResult, error) {
	var resp struct {
		Data []blItemData `json:"data"`
	}
	params := url.Values{"type": {"SET"}}

	b.log.Info("searching catalog", zap.String("query", query))
	if err := b.client.GetJSON(ctx, b.baseURL+"/items/SET", params, &resp); err != nil {
		return nil, translateErr(err)
	}

	items := resp.Data
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	results := make([]SetSearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, SetSearchResult{
			SetNo:    item.No,
			Name:     item.Name,
			Year:     item.YearReleased,
			Theme:    item.CategoryName,
			ImageURL: item.ThumbnailURL,
		})
	}
	return results, nil
}

// FetchSetMetadata returns normalized metadata for a set, served from the
// metadata cache when an unexpired entry exists.
func (b *Bricklink) FetchSetMetadata(ctx context.Context, setNo string) (SetMetadata, error) {
	if meta, ok := b.metadataCache.Get(setNo); ok {
		b.log.Debug("metadata cache hit", zap.String("set_no", setNo))
		return meta, nil
	}

	var resp struct {
		Data blItemData `json:"data"`
	}
	b.log.Info("fetching set metadata", zap.String("set_no", setNo))
	if err := b.client.GetJSON(ctx, b.baseURL+"/items/SET/"+setNo, nil, &resp); err != nil {
		return SetMetadata{}, translateErr(err)
	}

	meta := SetMetadata{
		SetNo:      resp.Data.No,
		Name:       resp.Data.Name,
		Year:       resp.Data.YearReleased,
		Theme:      resp.Data.CategoryName,
		ImageURL:   resp.Data.ImageURL,
		Weight:     resp.Data.Weight,
		Dimensions: resp.Data.Dim,
	}
	if meta.SetNo == "" {
		meta.SetNo = setNo
	}

	b.metadataCache.Add(setNo, meta)
	return meta, nil
}

// FetchSetInventory returns the set's part list, served from the inventory
// cache when an unexpired entry exists. Minifigures and nested subsets are
// broken down into constituent parts by the provider; only entries of item
// type PART make it into the result.
func (b *Bricklink) FetchSetInventory(ctx context.Context, setNo string) ([]InventoryPart, error) {
	if parts, ok := b.inventoryCache.Get(setNo); ok {
		b.log.Debug("inventory cache hit", zap.String("set_no", setNo))
		return parts, nil
	}

	var resp struct {
		Data []struct {
			Entries []blSubsetEntry `json:"entries"`
		} `json:"data"`
	}
	params := url.Values{
		"break_minifigs": {"true"},
		"break_subsets":  {"true"},
	}

	b.log.Info("fetching set inventory", zap.String("set_no", setNo))
	if err := b.client.GetJSON(ctx, b.baseURL+"/items/SET/"+setNo+"/subsets", params, &resp); err != nil {
		return nil, translateErr(err)
	}

	var parts []InventoryPart
	for _, group := range resp.Data {
		for _, e := range group.Entries {
			if e.Item.Type != "PART" {
				continue
			}
			parts = append(parts, InventoryPart{
				PartNo:        e.Item.No,
				ColorID:       e.ColorID,
				Qty:           e.Quantity,
				Name:          e.Item.Name,
				IsSpare:       e.IsAlternate,
				IsCounterpart: e.IsCounterpart,
			})
		}
	}
	b.log.Info("retrieved parts", zap.String("set_no", setNo), zap.Int("count", len(parts)))

	b.inventoryCache.Add(setNo, parts)
	return parts, nil
}

// HealthCheck probes a known catalog item and reports reachability only.
func (b *Bricklink) HealthCheck(ctx context.Context) bool {
	return b.client.HealthCheck(ctx, b.baseURL+"/items/SET/"+healthProbeSetNo)
}

// ClearCache drops both caches.
func (b *Bricklink) ClearCache() {
	b.metadataCache.Purge()
	b.inventoryCache.Purge()
}

// translateErr maps a transport failure onto the package's error taxonomy.
// The mapping depends only on the failure, not on the operation.
func translateErr(err error) error {
	var statusErr *oauthclient.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case 401, 403:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case 404:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case 429:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		default:
			return fmt.Errorf("%w (status %d)", ErrAPI, statusErr.Code)
		}
	}
	if oauthclient.IsTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrAPI, err)
}
