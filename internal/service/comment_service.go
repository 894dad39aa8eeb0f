package service

import (
	"context"
	"strings"

	"universo/internal/apperr"
	"universo/internal/model"
	"universo/internal/repository"
)

// CreateCommentInput adds a message to a task thread. UserID falls back to
// the caller when empty.
type CreateCommentInput struct {
	Content string `json:"content" validate:"required"`
	TaskID  ID     `json:"taskId" validate:"entity_id"`
	UserID  ID     `json:"userId" validate:"omitempty,entity_id"`
}

var commentMessages = map[string]string{
	"content": "El comentario no puede estar vacío",
	"taskId":  "Task ID debe ser numérico",
	"userId":  "User ID debe ser numérico",
}

type CommentService struct {
	commentRepo *repository.CommentRepository
	taskRepo    *repository.TaskRepository
	userRepo    *repository.UserRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, taskRepo *repository.TaskRepository, userRepo *repository.UserRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, taskRepo: taskRepo, userRepo: userRepo}
}

// ListByTask returns the thread of taskID oldest first. An unknown task has an
// empty thread.
func (s *CommentService) ListByTask(ctx context.Context, taskID uint) ([]model.Comment, error) {
	return s.commentRepo.ListByTask(ctx, taskID)
}

// Create appends a comment written by callerID unless the input names
// another author.
func (s *CommentService) Create(ctx context.Context, callerID uint, input CreateCommentInput) (*model.Comment, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := check(input, commentMessages); err != nil {
		return nil, err
	}

	taskID, _ := input.TaskID.Uint()
	userID := callerID
	if input.UserID != "" {
		userID, _ = input.UserID.Uint()
	}

	task, err := s.taskRepo.Exists(ctx, taskID)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil && !apperr.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if !task || author == nil {
		return nil, apperr.NewNotFoundError("comment", taskID).WithMessage("Tarea o Usuario no encontrado")
	}

	comment := model.Comment{Content: input.Content, TaskID: taskID, UserID: userID}
	if err := s.commentRepo.Create(ctx, &comment); err != nil {
		return nil, err
	}
	author.Sector = nil
	comment.User = author
	return &comment, nil
}
