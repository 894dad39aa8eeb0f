package model

import "time"

// Resource is a link in the shared resource directory.
type Resource struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	URL         string       `gorm:"type:text;not null" json:"url"`
	Type        ResourceType `gorm:"type:varchar(20);not null;default:'OTHER'" json:"type"`
	Visibility  Visibility   `gorm:"type:varchar(20);not null;default:'PUBLIC';index" json:"visibility"`
	SectorID    *uint        `gorm:"index" json:"sectorId,omitempty"`
	Sector      *Sector      `json:"sector,omitempty"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"-"`
}
