package model

import "time"

// Meeting is a scheduled event with a creator and a set of attendees.
type Meeting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Link      *string   `gorm:"type:text" json:"link,omitempty"`
	CreatorID uint      `gorm:"not null;index" json:"creatorId"`
	Creator   *User     `json:"creator,omitempty"`
	Attendees []User    `gorm:"many2many:meeting_attendees" json:"attendees"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// MeetingAttendee is the explicit join row between meetings and users.
type MeetingAttendee struct {
	MeetingID uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
	CreatedAt time.Time
}
