package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe_storefront_backend/internal/catalogapi"
	"cafe_storefront_backend/internal/models"
)

// fakeCatalogAPI scripts Search/List page sequences per call. The
// mutex guards listCalls; the auxiliary listings run concurrently.
type fakeCatalogAPI struct {
	mu          sync.Mutex
	configured  bool
	searchPages []searchPage
	searchCalls int
	listPages   map[string][]listPage
	listCalls   map[string]int
}

type searchPage struct {
	result *catalogapi.SearchResult
	err    error
}

type listPage struct {
	result *catalogapi.ListResult
	err    error
}

func newFakeCatalogAPI() *fakeCatalogAPI {
	return &fakeCatalogAPI{
		configured: true,
		listPages:  map[string][]listPage{},
		listCalls:  map[string]int{},
	}
}

func (f *fakeCatalogAPI) Configured() bool { return f.configured }

func (f *fakeCatalogAPI) Search(_ context.Context, _ []string, _ string, _ bool) (*catalogapi.SearchResult, error) {
	if f.searchCalls >= len(f.searchPages) {
		return &catalogapi.SearchResult{}, nil
	}
	page := f.searchPages[f.searchCalls]
	f.searchCalls++
	return page.result, page.err
}

func (f *fakeCatalogAPI) List(_ context.Context, objectType string, _ string) (*catalogapi.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := f.listCalls[objectType]
	f.listCalls[objectType] = call + 1
	pages := f.listPages[objectType]
	if call >= len(pages) {
		return &catalogapi.ListResult{}, nil
	}
	page := pages[call]
	return page.result, page.err
}

// fakeOverrideRepo is the read side of the override store; writes are
// unused by the menu pipeline.
type fakeOverrideRepo struct {
	items      []models.DisabledMenuItem
	categories []models.DisabledMenuCategory
	itemsErr   error
}

func (f *fakeOverrideRepo) ListDisabledItems() ([]models.DisabledMenuItem, error) {
	return f.items, f.itemsErr
}

func (f *fakeOverrideRepo) ListDisabledCategories() ([]models.DisabledMenuCategory, error) {
	return f.categories, nil
}

func (f *fakeOverrideRepo) AddDisabledItem(string) (*models.DisabledMenuItem, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeOverrideRepo) RemoveDisabledItem(string) error { return errors.New("not implemented") }

func (f *fakeOverrideRepo) AddDisabledCategory(string) (*models.DisabledMenuCategory, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeOverrideRepo) RemoveDisabledCategory(string) error { return errors.New("not implemented") }

func catalogItem(id, name, categoryID string, cents int64) models.CatalogObject {
	return models.CatalogObject{
		Type: models.ObjectTypeItem,
		ID:   id,
		ItemData: &models.CatalogItemData{
			Name:       name,
			CategoryID: categoryID,
			Variations: []models.CatalogObject{
				{
					Type: models.ObjectTypeItemVariation,
					ID:   id + "-var",
					ItemVariationData: &models.CatalogItemVariationData{
						PriceMoney: &models.Money{Amount: cents, Currency: "AUD"},
					},
				},
			},
		},
	}
}

func catalogCategory(id, name string) models.CatalogObject {
	return models.CatalogObject{
		Type:         models.ObjectTypeCategory,
		ID:           id,
		CategoryData: &models.CatalogCategoryData{Name: name},
	}
}

func TestGetMenu_ComposesItemsAndCategories(t *testing.T) {
	api := newFakeCatalogAPI()
	api.searchPages = []searchPage{
		{result: &catalogapi.SearchResult{
			Objects: []models.CatalogObject{
				catalogItem("item-1", "Flat White", "cat-coffee", 450),
				catalogItem("item-2", "Bacon Roll", "cat-food", 1200),
			},
			RelatedObjects: []models.CatalogObject{
				catalogCategory("cat-coffee", "Coffee"),
				catalogCategory("cat-food", "Food"),
			},
		}},
	}

	svc := NewMenuService(api, &fakeOverrideRepo{})
	resp, err := svc.GetMenu(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "catalog", resp.Source)
	assert.Equal(t, []string{"Coffee", "Food"}, resp.Categories)
	assert.Empty(t, resp.Warning)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Flat White", resp.Items[0].Name)
	assert.Equal(t, 4.5, resp.Items[0].Price)
	assert.Equal(t, "Coffee", resp.Items[0].Category)
}

func TestGetMenu_NotConfigured(t *testing.T) {
	api := newFakeCatalogAPI()
	api.configured = false

	svc := NewMenuService(api, &fakeOverrideRepo{})
	_, err := svc.GetMenu(context.Background(), "")
	assert.ErrorIs(t, err, ErrCatalogNotConfigured)
}

func TestGetMenu_FirstPageFailureIsFatal(t *testing.T) {
	api := newFakeCatalogAPI()
	api.searchPages = []searchPage{{err: errors.New("boom")}}

	svc := NewMenuService(api, &fakeOverrideRepo{})
	_, err := svc.GetMenu(context.Background(), "")
	assert.ErrorIs(t, err, ErrUpstreamFetch)
}

func TestGetMenu_MidPaginationFailureKeepsPartial(t *testing.T) {
	api := newFakeCatalogAPI()
	api.searchPages = []searchPage{
		{result: &catalogapi.SearchResult{
			Objects: []models.CatalogObject{catalogItem("item-1", "Flat White", "cat-coffee", 450)},
			RelatedObjects: []models.CatalogObject{
				catalogCategory("cat-coffee", "Coffee"),
			},
			Cursor: "page-2",
		}},
		{err: errors.New("boom")},
	}

	svc := NewMenuService(api, &fakeOverrideRepo{})
	resp, err := svc.GetMenu(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Count)
	assert.Contains(t, resp.Warning, "interrupted")
}

func TestGetMenu_PaginationStopsAtPageCap(t *testing.T) {
	api := newFakeCatalogAPI()
	for i := 0; i < maxCatalogPages+10; i++ {
		api.searchPages = append(api.searchPages, searchPage{
			result: &catalogapi.SearchResult{
				Objects: []models.CatalogObject{catalogItem(fmt.Sprintf("item-%d", i), "Item", "", 100)},
				Cursor:  fmt.Sprintf("page-%d", i+1),
			},
		})
	}

	svc := NewMenuService(api, &fakeOverrideRepo{})
	resp, err := svc.GetMenu(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, maxCatalogPages, api.searchCalls)
	assert.Equal(t, maxCatalogPages, resp.Count)
	assert.Contains(t, resp.Warning, "page cap")
}

func TestGetMenu_AuxiliaryFailureDegrades(t *testing.T) {
	api := newFakeCatalogAPI()
	api.searchPages = []searchPage{
		{result: &catalogapi.SearchResult{
			Objects: []models.CatalogObject{
				{
					Type: models.ObjectTypeItem,
					ID:   "item-1",
					ItemData: &models.CatalogItemData{
						Name:       "Flat White",
						CategoryID: "cat-coffee",
						Variations: []models.CatalogObject{
							{
								Type: models.ObjectTypeItemVariation,
								ID:   "var-1",
								ItemVariationData: &models.CatalogItemVariationData{
									PriceMoney: &models.Money{Amount: 450},
									ImageIDs:   []string{"img-1"},
								},
							},
						},
					},
				},
			},
			RelatedObjects: []models.CatalogObject{catalogCategory("cat-coffee", "Coffee")},
		}},
	}
	api.listPages[models.ObjectTypeImage] = []listPage{{err: errors.New("images down")}}

	svc := NewMenuService(api, &fakeOverrideRepo{})
	resp, err := svc.GetMenu(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Nil(t, resp.Items[0].ImageURL, "image listing failure degrades to no image")
	assert.Equal(t, 4.5, resp.Items[0].Price, "prices survive an image outage")
}

func TestGetMenu_AppliesOverrides(t *testing.T) {
	api := newFakeCatalogAPI()
	api.searchPages = []searchPage{
		{result: &catalogapi.SearchResult{
			Objects: []models.CatalogObject{
				catalogItem("item-1", "Flat White", "cat-coffee", 450),
				catalogItem("item-2", "Bacon Roll", "cat-food", 1200),
				catalogItem("item-3", "Croissant", "cat-pastry", 600),
			},
			RelatedObjects: []models.CatalogObject{
				catalogCategory("cat-coffee", "Coffee"),
				catalogCategory("cat-food", "Food"),
				catalogCategory("cat-pastry", "Pastries"),
			},
		}},
	}
	overrides := &fakeOverrideRepo{
		items:      []models.DisabledMenuItem{{SourceID: "item-2"}},
		categories: []models.DisabledMenuCategory{{CategoryName: "Pastries"}},
	}

	svc := NewMenuService(api, overrides)
	resp, err := svc.GetMenu(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Flat White", resp.Items[0].Name)
	assert.Equal(t, []string{"Coffee"}, resp.Categories, "categories reflect only surviving items")
}

func TestGetMenu_OverrideStoreFailureIsFatal(t *testing.T) {
	api := newFakeCatalogAPI()
	api.searchPages = []searchPage{{result: &catalogapi.SearchResult{}}}

	svc := NewMenuService(api, &fakeOverrideRepo{itemsErr: errors.New("db offline")})
	_, err := svc.GetMenu(context.Background(), "")
	assert.ErrorIs(t, err, ErrUpstreamFetch)
}

func TestGetMenu_CategoryFilter(t *testing.T) {
	api := newFakeCatalogAPI()
	api.searchPages = []searchPage{
		{result: &catalogapi.SearchResult{
			Objects: []models.CatalogObject{
				catalogItem("item-1", "Flat White", "cat-coffee", 450),
				catalogItem("item-2", "Bacon Roll", "cat-food", 1200),
			},
			RelatedObjects: []models.CatalogObject{
				catalogCategory("cat-coffee", "Coffee"),
				catalogCategory("cat-food", "Food"),
			},
		}},
	}

	svc := NewMenuService(api, &fakeOverrideRepo{})
	resp, err := svc.GetMenu(context.Background(), "  Coffee  ")
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Flat White", resp.Items[0].Name)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, []string{"Coffee", "Food"}, resp.Categories, "the category list ignores the item filter")
}

func TestGetCategories(t *testing.T) {
	api := newFakeCatalogAPI()
	api.searchPages = []searchPage{
		{result: &catalogapi.SearchResult{
			Objects: []models.CatalogObject{
				catalogItem("item-1", "Flat White", "cat-coffee", 450),
			},
			RelatedObjects: []models.CatalogObject{catalogCategory("cat-coffee", "Coffee")},
		}},
	}

	svc := NewMenuService(api, &fakeOverrideRepo{})
	categories, err := svc.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Coffee"}, categories)
}
