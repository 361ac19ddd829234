package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(30);not null;index" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Status       bool      `gorm:"not null" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Permissions []UserPermission `gorm:"foreignKey:UserID" json:"-"`
}
