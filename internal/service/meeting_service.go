package service

import (
	"context"
	"errors"
	"strings"

	"universo/internal/apperr"
	"universo/internal/model"
	"universo/internal/repository"
)

// CreateMeetingInput schedules a meeting. CreatorID falls back to the caller.
type CreateMeetingInput struct {
	Title       string  `json:"title" validate:"required"`
	Date        string  `json:"date" validate:"date_time"`
	Link        *string `json:"link"`
	CreatorID   ID      `json:"creatorId" validate:"omitempty,entity_id"`
	AttendeeIDs []ID    `json:"attendeeIds" validate:"dive,entity_id"`
}

// UpdateMeetingInput changes a meeting. A non-nil AttendeeIDs replaces the
// whole attendee set.
type UpdateMeetingInput struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	Date        *string `json:"date" validate:"omitnil,date_time"`
	Link        *string `json:"link"`
	AttendeeIDs []ID    `json:"attendeeIds" validate:"omitempty,dive,entity_id"`
}

var meetingMessages = map[string]string{
	"title":       "El título es obligatorio",
	"date":        "Fecha inválida o formato incorrecto",
	"creatorId":   "Creator ID debe ser numérico",
	"attendeeIds": "Los asistentes deben ser IDs numéricos",
}

type MeetingService struct {
	meetingRepo *repository.MeetingRepository
	userRepo    *repository.UserRepository
}

func NewMeetingService(meetingRepo *repository.MeetingRepository, userRepo *repository.UserRepository) *MeetingService {
	return &MeetingService{meetingRepo: meetingRepo, userRepo: userRepo}
}

// List returns every meeting with creator and attendees, earliest first.
func (s *MeetingService) List(ctx context.Context) ([]model.Meeting, error) {
	return s.meetingRepo.List(ctx)
}

func (s *MeetingService) Get(ctx context.Context, id uint) (*model.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NewNotFoundError("meeting", id)
	}
	return meeting, err
}

func (s *MeetingService) Create(ctx context.Context, callerID uint, input CreateMeetingInput) (*model.Meeting, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := check(input, meetingMessages); err != nil {
		return nil, err
	}

	creatorID := callerID
	if input.CreatorID != "" {
		creatorID, _ = input.CreatorID.Uint()
	}
	ok, err := s.userRepo.Exists(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NewNotFoundError("creator", creatorID)
	}

	attendees, err := s.attendees(ctx, input.AttendeeIDs)
	if err != nil {
		return nil, err
	}

	date, _ := ParseDateTime(input.Date)
	meeting := model.Meeting{
		Title:     input.Title,
		Date:      date,
		Link:      optional(input.Link),
		CreatorID: creatorID,
	}
	if err := s.meetingRepo.Create(ctx, &meeting, attendees); err != nil {
		return nil, err
	}
	return s.meetingRepo.FindByID(ctx, meeting.ID)
}

func (s *MeetingService) Update(ctx context.Context, id uint, input UpdateMeetingInput) (*model.Meeting, error) {
	input.Title = trimmed(input.Title)
	if err := check(input, meetingMessages); err != nil {
		return nil, err
	}

	meeting, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		meeting.Title = *input.Title
	}
	if input.Date != nil {
		meeting.Date, _ = ParseDateTime(*input.Date)
	}
	if input.Link != nil {
		meeting.Link = optional(input.Link)
	}

	var attendees []model.User
	if input.AttendeeIDs != nil {
		if attendees, err = s.attendees(ctx, input.AttendeeIDs); err != nil {
			return nil, err
		}
	}
	if err := s.meetingRepo.Update(ctx, meeting, attendees); err != nil {
		return nil, err
	}
	return s.meetingRepo.FindByID(ctx, id)
}

func (s *MeetingService) Delete(ctx context.Context, id uint) error {
	err := s.meetingRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NewNotFoundError("meeting", id)
	}
	return err
}

// attendees resolves ids to existing users. The result is never nil so an
// explicit empty list clears the set.
func (s *MeetingService) attendees(ctx context.Context, ids []ID) ([]model.User, error) {
	keys := make([]uint, 0, len(ids))
	for _, id := range ids {
		if n, ok := id.Uint(); ok {
			keys = append(keys, n)
		}
	}
	users, err := s.userRepo.FindByIDs(ctx, keys)
	if users == nil && err == nil {
		users = []model.User{}
	}
	return users, err
}
