package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/cache"
	db "github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/database"
)

// SearchAssets returns one page of assets matching term and filters, newest
// first. Pages are 1-based and sized by the catalog. Results are served from
// the query cache when present.
func (s *Service) SearchAssets(ctx context.Context, page int, term string, filters SearchFilters) (*Page, error) {
	if page < 1 {
		page = 1
	}
	term = strings.TrimSpace(term)
	pageSize := s.pageSize()

	key := cache.Key(page, term, filters.Map())
	gen := s.cache.Generation()
	if data, ok := s.cache.Get(ctx, key); ok {
		var cached Page
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	var rows []db.SearchAssetsRow
	err := WithRetry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		rows, err = s.queries.SearchAssets(ctx, db.SearchAssetsParams{
			Search:      ToPgText(term),
			Tipo:        ToPgText(filters.Tipo),
			Status:      ToPgText(filters.Status),
			Localizacao: ToPgText(filters.Localizacao),
			PageLimit:   int32(pageSize),
			PageOffset:  int32((page - 1) * pageSize),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}

	result := &Page{
		Data:     make([]Asset, 0, len(rows)),
		Page:     page,
		PageSize: pageSize,
	}
	for _, r := range rows {
		result.Data = append(result.Data, assetFromSearchRow(r))
	}
	if len(rows) > 0 {
		result.Count = rows[0].TotalCount
	}
	result.TotalPages = int((result.Count + int64(pageSize) - 1) / int64(pageSize))

	if data, err := json.Marshal(result); err == nil {
		s.cache.SetAt(ctx, gen, key, data)
	}
	return result, nil
}

func (s *Service) pageSize() int {
	if s.catalog.PageSize > 0 {
		return s.catalog.PageSize
	}
	return 20
}

// GetAsset returns one asset by id.
func (s *Service) GetAsset(ctx context.Context, id string) (*Asset, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var row db.Asset
	err = WithRetry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		row, err = s.queries.GetAsset(ctx, uid)
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}
	a := assetFromDB(row)
	return &a, nil
}

// UniqueLocations returns the distinct non-blank current locations, sorted.
func (s *Service) UniqueLocations(ctx context.Context) ([]string, error) {
	var rows []pgtype.Text
	err := WithRetry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		rows, err = s.queries.ListUniqueLocations(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	locations := make([]string, 0, len(rows))
	for _, r := range rows {
		if loc := strings.TrimSpace(textOf(r)); loc != "" {
			locations = append(locations, loc)
		}
	}
	return locations, nil
}

// RecentAssets returns the latest assets, with assets still being created
// listed first.
func (s *Service) RecentAssets(ctx context.Context) ([]Asset, error) {
	var rows []db.Asset
	err := WithRetry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		rows, err = s.queries.ListRecentAssets(ctx, DefaultRecentLimit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list recent assets: %w", err)
	}
	s.recent.Reset(assetsFromDB(rows))
	return s.recent.Items(), nil
}

// ListAllAssets returns every asset matching filters, ordered by code.
// Exports and reports read through it.
func (s *Service) ListAllAssets(ctx context.Context, filters SearchFilters) ([]Asset, error) {
	var rows []db.Asset
	err := WithRetry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		rows, err = s.queries.ListAssets(ctx, db.ListAssetsParams{
			Tipo:        ToPgText(filters.Tipo),
			Status:      ToPgText(filters.Status),
			Localizacao: ToPgText(filters.Localizacao),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assetsFromDB(rows), nil
}
