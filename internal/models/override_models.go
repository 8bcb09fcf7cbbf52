package models

import "time"

// DisabledMenuItem hides a single catalog item from the storefront
// without deleting it upstream. Matched by exact source id.
type DisabledMenuItem struct {
	ID        int64     `json:"id"`
	SourceID  string    `json:"source_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DisabledMenuCategory hides every item of a category from the
// storefront. Matched by exact trimmed category name.
type DisabledMenuCategory struct {
	ID           int64     `json:"id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminUser is a staff account for the admin API.
type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// StorefrontSetting is a single key/value row of storefront_settings.
type StorefrontSetting struct {
	ID        int64     `json:"id"`
	Key       string    `json:"setting_key"`
	Value     *string   `json:"setting_value"`
	UpdatedAt time.Time `json:"updated_at"`
}
