package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"universo/internal/model"
)

// MeetingRepository handles meetings and their attendee sets.
type MeetingRepository struct {
	db *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Creator").Preload("Attendees", func(db *gorm.DB) *gorm.DB {
		return db.Order("users.id ASC")
	})
}

// List returns all meetings, soonest first.
func (r *MeetingRepository) List(ctx context.Context) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := r.withRelations(ctx).Order("date ASC, id ASC").Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	return meetings, nil
}

// ListBetween returns meetings scheduled in [from, to), soonest first.
func (r *MeetingRepository) ListBetween(ctx context.Context, from, to time.Time) ([]model.Meeting, error) {
	var meetings []model.Meeting
	if err := r.withRelations(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC, id ASC").
		Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("list meetings between: %w", err)
	}
	return meetings, nil
}

func (r *MeetingRepository) FindByID(ctx context.Context, id uint) (*model.Meeting, error) {
	var meeting model.Meeting
	if err := r.withRelations(ctx).First(&meeting, id).Error; err != nil {
		return nil, notFound("find meeting", err)
	}
	return &meeting, nil
}

// Create inserts the meeting and its attendee rows in one transaction.
func (r *MeetingRepository) Create(ctx context.Context, meeting *model.Meeting, attendees []model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(meeting).Error; err != nil {
			return fmt.Errorf("create meeting: %w", err)
		}
		return replaceAttendees(tx, meeting, attendees)
	})
}

// Update saves the meeting columns. When attendees is non-nil the attendee
// set is replaced by it; nil leaves the set untouched.
func (r *MeetingRepository) Update(ctx context.Context, meeting *model.Meeting, attendees []model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(meeting).Error; err != nil {
			return fmt.Errorf("update meeting: %w", err)
		}
		if attendees == nil {
			return nil
		}
		return replaceAttendees(tx, meeting, attendees)
	})
}

// Delete removes the meeting and its attendee rows.
func (r *MeetingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&model.MeetingAttendee{}).Error; err != nil {
			return fmt.Errorf("delete meeting attendees: %w", err)
		}
		res := tx.Delete(&model.Meeting{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete meeting: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func replaceAttendees(tx *gorm.DB, meeting *model.Meeting, attendees []model.User) error {
	if err := tx.Where("meeting_id = ?", meeting.ID).Delete(&model.MeetingAttendee{}).Error; err != nil {
		return fmt.Errorf("clear meeting attendees: %w", err)
	}
	if len(attendees) == 0 {
		return nil
	}
	rows := make([]model.MeetingAttendee, 0, len(attendees))
	seen := make(map[uint]bool, len(attendees))
	for _, u := range attendees {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		rows = append(rows, model.MeetingAttendee{MeetingID: meeting.ID, UserID: u.ID})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("add meeting attendees: %w", err)
	}
	return nil
}
