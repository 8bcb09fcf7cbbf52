package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cafe_storefront_backend/internal/catalogapi"
	"cafe_storefront_backend/internal/models"
	"cafe_storefront_backend/internal/repositories"
	"cafe_storefront_backend/pkg/utils"
)

// --- Custom Service Errors for Menu ---
var (
	ErrCatalogNotConfigured = errors.New("catalog service is not configured")
	ErrUpstreamFetch        = errors.New("upstream fetch failed")
)

// maxCatalogPages bounds cursor pagination so a collaborator that keeps
// returning cursors cannot loop the fetch forever. Hitting the cap is a
// warning, not a failure: a partial catalog beats no menu.
const maxCatalogPages = 100

// primaryObjectTypes is the item listing fetch; auxiliaryObjectTypes
// are fetched concurrently afterwards and populate disjoint tables.
var (
	primaryObjectTypes   = []string{models.ObjectTypeItem, models.ObjectTypeCategory, models.ObjectTypeItemVariation}
	auxiliaryObjectTypes = []string{models.ObjectTypeModifierList, models.ObjectTypeModifier, models.ObjectTypeImage}
)

// --- MenuService Interface ---
type MenuService interface {
	// GetMenu composes the storefront menu from the catalog service and
	// the visibility-override store. categoryFilter, when non-empty,
	// keeps only items whose category matches by exact trimmed equality.
	GetMenu(ctx context.Context, categoryFilter string) (*models.MenuResponse, error)
	// GetCategories returns just the visible category list.
	GetCategories(ctx context.Context) ([]string, error)
}

// --- menuService Implementation ---
type menuService struct {
	catalog   catalogapi.API
	overrides repositories.OverrideRepository
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(catalog catalogapi.API, overrides repositories.OverrideRepository) MenuService {
	return &menuService{
		catalog:   catalog,
		overrides: overrides,
	}
}

func (s *menuService) GetMenu(ctx context.Context, categoryFilter string) (*models.MenuResponse, error) {
	if s.catalog == nil || !s.catalog.Configured() {
		return nil, ErrCatalogNotConfigured
	}

	objects, warning, err := s.fetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	disabledItems, disabledCategories, err := s.loadOverrides()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	idx := indexCatalog(objects)

	items := []models.MenuItem{}
	for _, obj := range objects {
		if obj.Type != models.ObjectTypeItem {
			continue
		}
		if menuItem := normalizeItem(obj, idx); menuItem != nil {
			items = append(items, *menuItem)
		}
	}

	visible := filterVisible(items, disabledItems, disabledCategories)
	categories := aggregateCategories(visible, disabledCategories)

	if filter := strings.TrimSpace(categoryFilter); filter != "" {
		matched := []models.MenuItem{}
		for _, item := range visible {
			if strings.TrimSpace(item.Category) == filter {
				matched = append(matched, item)
			}
		}
		visible = matched
	}

	return &models.MenuResponse{
		Items:      visible,
		Categories: categories,
		Source:     "catalog",
		Count:      len(visible),
		Warning:    warning,
	}, nil
}

func (s *menuService) GetCategories(ctx context.Context) ([]string, error) {
	resp, err := s.GetMenu(ctx, "")
	if err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// fetchAll accumulates the full object graph: the sequential primary
// cursor loop, then the three auxiliary listings in parallel. The
// returned warning is non-empty when the result is known to be partial.
func (s *menuService) fetchAll(ctx context.Context) ([]models.CatalogObject, string, error) {
	objects, warning, err := s.searchPrimary(ctx)
	if err != nil {
		return nil, "", err
	}

	auxiliary, auxWarning := s.listAuxiliary(ctx)
	objects = append(objects, auxiliary...)
	if warning == "" {
		warning = auxWarning
	}
	return objects, warning, nil
}

// searchPrimary pages through the item/category/variation search. The
// loop is sequential because each page's cursor comes from the one
// before it. A mid-pagination failure keeps the pages already fetched.
func (s *menuService) searchPrimary(ctx context.Context) ([]models.CatalogObject, string, error) {
	var objects []models.CatalogObject
	cursor := ""
	for page := 0; page < maxCatalogPages; page++ {
		result, err := s.catalog.Search(ctx, primaryObjectTypes, cursor, true)
		if err != nil {
			if len(objects) == 0 {
				return nil, "", err
			}
			utils.LogWarn(err, "Catalog search failed mid-pagination, continuing with partial catalog", map[string]interface{}{"pages_fetched": page})
			return objects, "Catalog fetch was interrupted; the menu may be incomplete.", nil
		}
		objects = append(objects, result.Objects...)
		objects = append(objects, result.RelatedObjects...)
		cursor = result.Cursor
		if cursor == "" {
			return objects, "", nil
		}
	}
	utils.LogWarn(nil, "Catalog pagination stopped at page cap", map[string]interface{}{"page_cap": maxCatalogPages})
	return objects, "Catalog pagination stopped at the page cap; the menu may be incomplete.", nil
}

// listAuxiliary fetches modifier lists, modifiers and images. The three
// listings are independent, so they run concurrently and each failure
// degrades to an empty list: missing images must not take down prices.
func (s *menuService) listAuxiliary(ctx context.Context) ([]models.CatalogObject, string) {
	results := make([][]models.CatalogObject, len(auxiliaryObjectTypes))
	capped := make([]bool, len(auxiliaryObjectTypes))

	var wg sync.WaitGroup
	for i, objectType := range auxiliaryObjectTypes {
		wg.Add(1)
		go func(i int, objectType string) {
			defer wg.Done()
			objects, hitCap, err := s.listAllOfType(ctx, objectType)
			if err != nil {
				utils.LogWarn(err, "Auxiliary catalog listing failed, continuing without it", map[string]interface{}{"object_type": objectType})
				return
			}
			results[i] = objects
			capped[i] = hitCap
		}(i, objectType)
	}
	wg.Wait()

	var objects []models.CatalogObject
	warning := ""
	for i := range results {
		objects = append(objects, results[i]...)
		if capped[i] {
			warning = "Catalog pagination stopped at the page cap; the menu may be incomplete."
		}
	}
	return objects, warning
}

func (s *menuService) listAllOfType(ctx context.Context, objectType string) ([]models.CatalogObject, bool, error) {
	var objects []models.CatalogObject
	cursor := ""
	for page := 0; page < maxCatalogPages; page++ {
		result, err := s.catalog.List(ctx, objectType, cursor)
		if err != nil {
			return nil, false, err
		}
		objects = append(objects, result.Objects...)
		cursor = result.Cursor
		if cursor == "" {
			return objects, false, nil
		}
	}
	utils.LogWarn(nil, "Catalog pagination stopped at page cap", map[string]interface{}{"object_type": objectType, "page_cap": maxCatalogPages})
	return objects, true, nil
}

// loadOverrides reads the visibility-override store into lookup sets.
// A store whose tables have not been migrated yet reads as empty sets
// (handled by the repository); other failures propagate.
func (s *menuService) loadOverrides() (map[string]struct{}, map[string]struct{}, error) {
	disabledItems, err := s.overrides.ListDisabledItems()
	if err != nil {
		return nil, nil, fmt.Errorf("listing disabled items: %w", err)
	}
	disabledCategories, err := s.overrides.ListDisabledCategories()
	if err != nil {
		return nil, nil, fmt.Errorf("listing disabled categories: %w", err)
	}

	itemSet := make(map[string]struct{}, len(disabledItems))
	for _, d := range disabledItems {
		itemSet[strings.TrimSpace(d.SourceID)] = struct{}{}
	}
	categorySet := make(map[string]struct{}, len(disabledCategories))
	for _, d := range disabledCategories {
		categorySet[strings.TrimSpace(d.CategoryName)] = struct{}{}
	}
	return itemSet, categorySet, nil
}
