package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cafe_storefront_backend/internal/models"
)

const timezoneSettingKey = "business_timezone"

// SettingsRepository defines the interface for storefront settings,
// including the weekly ordering-hours record and business timezone.
type SettingsRepository interface {
	GetOrderingHours() (*models.OrderingHoursRecord, error)
	UpdateOrderingHours(record *models.OrderingHoursRecord) error
	GetTimezone() (string, error)
	SetTimezone(timezone string) error
}

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetOrderingHours assembles the 21-field hours record from its
// key/value rows. Keys match the record's JSON tags
// ({day}_{itemType}_ordering_hours), so the row map is projected onto
// the struct through a JSON round-trip.
func (r *settingsRepository) GetOrderingHours() (*models.OrderingHoursRecord, error) {
	query := `SELECT setting_key, setting_value FROM storefront_settings WHERE setting_key LIKE '%_ordering_hours'`
	rows, err := r.db.Query(query)
	if err != nil {
		if isUndefinedTable(err) {
			return &models.OrderingHoursRecord{}, nil
		}
		return nil, fmt.Errorf("%w: loading ordering hours: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	values := map[string]*string{}
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: scanning ordering hours row: %v", ErrDatabaseError, err)
		}
		if value.Valid {
			v := value.String
			values[key] = &v
		} else {
			values[key] = nil
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating ordering hours rows: %v", ErrDatabaseError, err)
	}

	payload, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding ordering hours map: %v", ErrDatabaseError, err)
	}
	record := &models.OrderingHoursRecord{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, fmt.Errorf("%w: decoding ordering hours record: %v", ErrDatabaseError, err)
	}
	return record, nil
}

// UpdateOrderingHours replaces all 21 hour slots with the given record,
// writing NULL for unset slots.
func (r *settingsRepository) UpdateOrderingHours(record *models.OrderingHoursRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: encoding ordering hours record: %v", ErrDatabaseError, err)
	}
	values := map[string]*string{}
	if err := json.Unmarshal(payload, &values); err != nil {
		return fmt.Errorf("%w: decoding ordering hours record: %v", ErrDatabaseError, err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning ordering hours update: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	query := `INSERT INTO storefront_settings (setting_key, setting_value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (setting_key)
	          DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = EXCLUDED.updated_at`
	now := time.Now()
	for key, value := range values {
		var dbValue sql.NullString
		if value != nil {
			dbValue = sql.NullString{String: *value, Valid: true}
		}
		if _, err := tx.Exec(query, key, dbValue, now); err != nil {
			return fmt.Errorf("%w: upserting ordering hours key %s: %v", ErrDatabaseError, key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing ordering hours update: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetTimezone returns the configured business timezone, or "" when unset.
func (r *settingsRepository) GetTimezone() (string, error) {
	var value sql.NullString
	query := `SELECT setting_value FROM storefront_settings WHERE setting_key = $1`
	err := r.db.QueryRow(query, timezoneSettingKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: loading business timezone: %v", ErrDatabaseError, err)
	}
	if !value.Valid {
		return "", nil
	}
	return value.String, nil
}

func (r *settingsRepository) SetTimezone(timezone string) error {
	query := `INSERT INTO storefront_settings (setting_key, setting_value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (setting_key)
	          DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.Exec(query, timezoneSettingKey, timezone, time.Now()); err != nil {
		return fmt.Errorf("%w: setting business timezone: %v", ErrDatabaseError, err)
	}
	return nil
}
