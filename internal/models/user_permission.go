package models

import "time"

// UserPermission links one User to one Permission. The composite unique index
// is the store-level backstop against concurrent duplicate inserts.
type UserPermission struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_user_permissions_pair;index" json:"user_id"`
	PermissionID uint64    `gorm:"not null;uniqueIndex:idx_user_permissions_pair;index" json:"permission_id"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Permission Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
}
