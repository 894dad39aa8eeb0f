package service

import (
	"context"
	"errors"
	"strings"

	"universo/internal/apperr"
	"universo/internal/model"
	"universo/internal/repository"
)

// CreateTaskInput is the payload for a new task.
type CreateTaskInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Priority    string  `json:"priority" validate:"oneof=BAJA MEDIA ALTA"`
	Status      string  `json:"status" validate:"omitempty,oneof=PENDIENTE EN_PROGRESO REVISION COMPLETADA"`
	DueDate     string  `json:"due_date" validate:"calendar_date"`
	DriveLink   *string `json:"drive_link"`
	SectorID    ID      `json:"sectorId" validate:"entity_id"`
	UserID      ID      `json:"userId" validate:"entity_id"`
}

// UpdateTaskInput changes a task. Nil fields are left as they are.
type UpdateTaskInput struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" validate:"omitnil,oneof=BAJA MEDIA ALTA"`
	Status      *string `json:"status" validate:"omitnil,oneof=PENDIENTE EN_PROGRESO REVISION COMPLETADA"`
	DueDate     *string `json:"due_date" validate:"omitnil,calendar_date"`
	DriveLink   *string `json:"drive_link"`
	SectorID    *ID     `json:"sectorId" validate:"omitnil,entity_id"`
	UserID      *ID     `json:"userId" validate:"omitnil,entity_id"`
}

var taskMessages = map[string]string{
	"title":    "El título es obligatorio",
	"priority": "Prioridad inválida",
	"status":   "Estado inválido",
	"due_date": "Fecha inválida o formato incorrecto",
	"sectorId": "Sector ID debe ser numérico",
	"userId":   "User ID debe ser numérico",
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo   *repository.TaskRepository
	sectorRepo *repository.SectorRepository
	userRepo   *repository.UserRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, sectorRepo *repository.SectorRepository, userRepo *repository.UserRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, sectorRepo: sectorRepo, userRepo: userRepo}
}

// List returns every task with sector and assignee. Filtering is left to
// clients.
func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.List(ctx)
}

func (s *TaskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NewNotFoundError("task", id)
	}
	return task, err
}

func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*model.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := check(input, taskMessages); err != nil {
		return nil, err
	}

	sectorID, _ := input.SectorID.Uint()
	userID, _ := input.UserID.Uint()
	if err := s.checkAssignment(ctx, sectorID, userID); err != nil {
		return nil, err
	}

	due, _ := ParseDate(input.DueDate)
	status := model.StatusPending
	if input.Status != "" {
		status = model.Status(input.Status)
	}

	task := model.Task{
		Title:       input.Title,
		Description: strings.TrimSpace(input.Description),
		Priority:    model.Priority(input.Priority),
		Status:      status,
		DueDate:     due,
		DriveLink:   optional(input.DriveLink),
		SectorID:    sectorID,
		UserID:      userID,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(ctx, task.ID)
}

// Update applies the supplied fields. Status moves freely between any two
// workflow columns.
func (s *TaskService) Update(ctx context.Context, id uint, input UpdateTaskInput) (*model.Task, error) {
	input.Title = trimmed(input.Title)
	if err := check(input, taskMessages); err != nil {
		return nil, err
	}

	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sectorID, userID := task.SectorID, task.UserID
	if input.SectorID != nil {
		sectorID, _ = input.SectorID.Uint()
	}
	if input.UserID != nil {
		userID, _ = input.UserID.Uint()
	}
	if sectorID != task.SectorID || userID != task.UserID {
		if err := s.checkAssignment(ctx, sectorID, userID); err != nil {
			return nil, err
		}
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Priority != nil {
		task.Priority = model.Priority(*input.Priority)
	}
	if input.Status != nil {
		task.Status = model.Status(*input.Status)
	}
	if input.DueDate != nil {
		task.DueDate, _ = ParseDate(*input.DueDate)
	}
	if input.DriveLink != nil {
		task.DriveLink = optional(input.DriveLink)
	}
	task.SectorID, task.UserID = sectorID, userID

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(ctx, id)
}

// SetStatus moves a task to another workflow column.
func (s *TaskService) SetStatus(ctx context.Context, id uint, status string) (*model.Task, error) {
	return s.Update(ctx, id, UpdateTaskInput{Status: &status})
}

// Delete removes a task and its comments.
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	err := s.taskRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NewNotFoundError("task", id).WithMessage("La tarea no existe")
	}
	return err
}

func (s *TaskService) checkAssignment(ctx context.Context, sectorID, userID uint) error {
	ok, err := s.sectorRepo.Exists(ctx, sectorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFoundError("sector", sectorID)
	}
	ok, err = s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFoundError("user", userID)
	}
	return nil
}
