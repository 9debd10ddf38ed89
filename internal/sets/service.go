// Package sets coordinates catalog fetches with local persistence: adding a
// set pulls its metadata and part list from the catalog provider and records
// every part in the local inventory.
package sets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"brickinv/internal/catalog"
	"brickinv/internal/entity"
	"brickinv/internal/inventory"
)

// ErrSetNotFound is the domain-level not-found: the set is absent locally,
// or the provider answered but had no usable record for the number. Distinct
// from catalog.ErrNotFound, which is a provider 404.
var ErrSetNotFound = errors.New("set not found")

type Service struct {
	catalog   catalog.Service
	repo      Repository
	inventory inventory.Repository
	log       *zap.Logger
}

func NewService(catalogSvc catalog.Service, repo Repository, inventoryRepo inventory.Repository, logger *zap.Logger) *Service {
	return &Service{
		catalog:   catalogSvc,
		repo:      repo,
		inventory: inventoryRepo,
		log:       logger,
	}
}

// AddSet fetches a set from the catalog and records it with every part.
// Parts of an assembled set start OWNED_LOCKED, otherwise OWNED_FREE.
// Catalog errors propagate unchanged so the transport layer can map them.
//
// There is no rollback: if a part upsert fails after the set record was
// written, already-written parts remain.
func (s *Service) AddSet(ctx context.Context, setNo string, assembled bool) (entity.LegoSet, error) {
	meta, err := s.catalog.FetchSetMetadata(ctx, setNo)
	if err != nil {
		return entity.LegoSet{}, err
	}
	if meta.Name == "" {
		// The provider can answer 200 with a placeholder record.
		return entity.LegoSet{}, fmt.Errorf("%w: %q", ErrSetNotFound, setNo)
	}

	parts, err := s.catalog.FetchSetInventory(ctx, setNo)
	if err != nil {
		return entity.LegoSet{}, err
	}

	set := entity.LegoSet{SetNo: setNo, Name: meta.Name, Assembled: assembled}
	if err := s.repo.Add(ctx, set); err != nil {
		return entity.LegoSet{}, fmt.Errorf("persist set %q: %w", setNo, err)
	}

	state := entity.StateOwnedFree
	if assembled {
		state = entity.StateOwnedLocked
	}

	for _, p := range parts {
		part := entity.Part{PartNo: p.PartNo, ColorID: p.ColorID, Name: p.Name}
		if err := s.inventory.UpsertPart(ctx, setNo, part, p.Qty, state); err != nil {
			return entity.LegoSet{}, fmt.Errorf("upsert part %s/%d for set %q: %w", p.PartNo, p.ColorID, setNo, err)
		}
	}

	s.log.Info("set added",
		zap.String("set_no", setNo),
		zap.Bool("assembled", assembled),
		zap.Int("parts", len(parts)),
	)
	return set, nil
}

// Get returns the locally stored set record.
func (s *Service) Get(ctx context.Context, setNo string) (entity.LegoSet, error) {
	return s.repo.Get(ctx, setNo)
}

// Search passes through to the catalog provider.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]catalog.SetSearchResult, error) {
	return s.catalog.SearchSets(ctx, query, limit)
}
