package model

import "time"

// Task is a unit of work assigned to one user inside one sector.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Priority    Priority  `gorm:"type:varchar(16);not null;default:'MEDIA'" json:"priority"`
	Status      Status    `gorm:"type:varchar(16);not null;default:'PENDIENTE';index" json:"status"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	DriveLink   *string   `gorm:"type:text" json:"drive_link,omitempty"`
	SectorID    uint      `gorm:"not null;index" json:"sectorId"`
	Sector      *Sector   `json:"sector,omitempty"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	User        *User     `json:"user,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Overdue reports whether the task is still open after its due day.
func (t Task) Overdue(now time.Time) bool {
	if t.Status == StatusDone {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(today)
}
