package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserDeviceModel is the GORM-specific struct for the 'user_devices' table.
// Soft-deleted rows are devices the push provider rejected; the token index
// stays unique across them so re-registration revives the same row.
type UserDeviceModel struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Token      string                      `gorm:"type:varchar(512);not null;uniqueIndex"`
	Platform   string                      `gorm:"type:varchar(16);not null"`
	Channels   datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
	Locale     string                      `gorm:"type:varchar(32)"`
	Timezone   string                      `gorm:"type:varchar(64)"`
	AppVersion string                      `gorm:"type:varchar(32)"`
	IsActive   bool                        `gorm:"not null;default:true;index"`
	LastSeenAt time.Time                   `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (UserDeviceModel) TableName() string {
	return "user_devices"
}
