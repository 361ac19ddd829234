package models

import "time"

type Permission struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Code        string    `gorm:"type:varchar(20);not null;index" json:"code"`
	Description string    `gorm:"type:varchar(100);not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Users []UserPermission `gorm:"foreignKey:PermissionID" json:"-"`
}
