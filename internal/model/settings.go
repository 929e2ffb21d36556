package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Settings types stored in settings.settings_type.
const (
	SettingsTypeInstitution = "institution"
	SettingsTypeCertificate = "certificate"
	SettingsTypeMeeting     = "meeting"
)

// JSONMap is a JSONB column.
type JSONMap map[string]interface{}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("JSONMap.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, m)
}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Setting maps to settings; one row per (user, settings_type).
type Setting struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:uq_settings_user_type" json:"user_id"`
	SettingsType string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_settings_user_type" json:"settings_type"`
	SettingsData JSONMap   `gorm:"type:jsonb;not null;default:'{}'"               json:"settings_data"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName sets the table name.
func (Setting) TableName() string { return "settings" }
