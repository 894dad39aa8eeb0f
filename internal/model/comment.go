package model

import "time"

// Comment is an immutable note on a task thread.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	TaskID    uint      `gorm:"not null;index" json:"taskId"`
	Task      *Task     `json:"-"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
