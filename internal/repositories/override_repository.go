package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cafe_storefront_backend/internal/models"
)

// OverrideRepository defines the interface for visibility-override storage.
// The menu pipeline only reads it; the admin API owns the writes.
type OverrideRepository interface {
	ListDisabledItems() ([]models.DisabledMenuItem, error)
	AddDisabledItem(sourceID string) (*models.DisabledMenuItem, error)
	RemoveDisabledItem(sourceID string) error

	ListDisabledCategories() ([]models.DisabledMenuCategory, error)
	AddDisabledCategory(categoryName string) (*models.DisabledMenuCategory, error)
	RemoveDisabledCategory(categoryName string) error
}

type overrideRepository struct {
	db *sql.DB
}

// NewOverrideRepository creates a new instance of OverrideRepository.
func NewOverrideRepository(db *sql.DB) OverrideRepository {
	return &overrideRepository{db: db}
}

// ListDisabledItems returns every item-level override. A store whose
// table has not been migrated yet reads as empty, not as an error.
func (r *overrideRepository) ListDisabledItems() ([]models.DisabledMenuItem, error) {
	query := `SELECT id, source_id, created_at FROM disabled_menu_items ORDER BY created_at`
	rows, err := r.db.Query(query)
	if err != nil {
		if isUndefinedTable(err) {
			return []models.DisabledMenuItem{}, nil
		}
		return nil, fmt.Errorf("%w: listing disabled menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.DisabledMenuItem{}
	for rows.Next() {
		var item models.DisabledMenuItem
		if err := rows.Scan(&item.ID, &item.SourceID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning disabled menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating disabled menu items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *overrideRepository) AddDisabledItem(sourceID string) (*models.DisabledMenuItem, error) {
	sourceID = strings.TrimSpace(sourceID)
	item := &models.DisabledMenuItem{SourceID: sourceID}
	query := `INSERT INTO disabled_menu_items (source_id, created_at) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRow(query, sourceID, time.Now()).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: item '%s' is already disabled", ErrDuplicateKey, sourceID)
		}
		return nil, fmt.Errorf("%w: adding disabled menu item: %v", ErrDatabaseError, err)
	}
	return item, nil
}

func (r *overrideRepository) RemoveDisabledItem(sourceID string) error {
	result, err := r.db.Exec(`DELETE FROM disabled_menu_items WHERE source_id = $1`, strings.TrimSpace(sourceID))
	if err != nil {
		return fmt.Errorf("%w: removing disabled menu item: %v", ErrDatabaseError, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDisabledCategories returns every category-level override, again
// tolerating a not-yet-migrated table.
func (r *overrideRepository) ListDisabledCategories() ([]models.DisabledMenuCategory, error) {
	query := `SELECT id, category_name, created_at FROM disabled_menu_categories ORDER BY created_at`
	rows, err := r.db.Query(query)
	if err != nil {
		if isUndefinedTable(err) {
			return []models.DisabledMenuCategory{}, nil
		}
		return nil, fmt.Errorf("%w: listing disabled menu categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	categories := []models.DisabledMenuCategory{}
	for rows.Next() {
		var category models.DisabledMenuCategory
		if err := rows.Scan(&category.ID, &category.CategoryName, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning disabled menu category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating disabled menu categories: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

func (r *overrideRepository) AddDisabledCategory(categoryName string) (*models.DisabledMenuCategory, error) {
	categoryName = strings.TrimSpace(categoryName)
	category := &models.DisabledMenuCategory{CategoryName: categoryName}
	query := `INSERT INTO disabled_menu_categories (category_name, created_at) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRow(query, categoryName, time.Now()).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category '%s' is already disabled", ErrDuplicateKey, categoryName)
		}
		return nil, fmt.Errorf("%w: adding disabled menu category: %v", ErrDatabaseError, err)
	}
	return category, nil
}

func (r *overrideRepository) RemoveDisabledCategory(categoryName string) error {
	result, err := r.db.Exec(`DELETE FROM disabled_menu_categories WHERE category_name = $1`, strings.TrimSpace(categoryName))
	if err != nil {
		return fmt.Errorf("%w: removing disabled menu category: %v", ErrDatabaseError, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
