package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"universo/internal/apperr"
	"universo/internal/auth"
	"universo/internal/model"
	"universo/internal/repository"
)

type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=6"`
	Role     string `json:"role" validate:"oneof=ADMINISTRADOR EMPLEADO"`
	SectorID ID     `json:"sectorId" validate:"entity_id"`
}

// UpdateUserInput changes a user. A nil or empty password keeps the current
// one.
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitnil,min=1"`
	Email    *string `json:"email" validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=6"`
	Role     *string `json:"role" validate:"omitnil,oneof=ADMINISTRADOR EMPLEADO"`
	SectorID *ID     `json:"sectorId" validate:"omitnil,entity_id"`
}

var userMessages = map[string]string{
	"name":     "El nombre es obligatorio",
	"email":    "Email inválido",
	"password": "La contraseña debe tener al menos 6 caracteres",
	"role":     "Rol inválido",
	"sectorId": "Sector ID debe ser numérico",
}

const emailTakenMessage = "El email ya está registrado"

// UserService manages accounts. Passwords are stored as bcrypt hashes only.
type UserService struct {
	userRepo   *repository.UserRepository
	sectorRepo *repository.SectorRepository
	taskRepo   *repository.TaskRepository
}

func NewUserService(userRepo *repository.UserRepository, sectorRepo *repository.SectorRepository, taskRepo *repository.TaskRepository) *UserService {
	return &UserService{userRepo: userRepo, sectorRepo: sectorRepo, taskRepo: taskRepo}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NewNotFoundError("user", id)
	}
	return user, err
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if err := check(input, userMessages); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, input.Email, 0); err != nil {
		return nil, err
	}
	sectorID, _ := input.SectorID.Uint()
	if err := s.checkSector(ctx, sectorID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
		Role:     model.Role(input.Role),
		SectorID: sectorID,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, duplicateField(err, "email", emailTakenMessage)
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

func (s *UserService) Update(ctx context.Context, id uint, input UpdateUserInput) (*model.User, error) {
	input.Name = trimmed(input.Name)
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		input.Email = &email
	}
	if input.Password != nil && *input.Password == "" {
		input.Password = nil
	}
	if err := check(input, userMessages); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := s.checkEmail(ctx, *input.Email, id); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if input.Role != nil {
		user.Role = model.Role(*input.Role)
	}
	if input.SectorID != nil {
		sectorID, _ := input.SectorID.Uint()
		if sectorID != user.SectorID {
			if err := s.checkSector(ctx, sectorID); err != nil {
				return nil, err
			}
			user.SectorID = sectorID
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, duplicateField(err, "email", emailTakenMessage)
	}
	return s.userRepo.GetByID(ctx, id)
}

// Delete removes a user that owns no tasks, along with their meeting
// attendance.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	owned, err := s.taskRepo.CountByUser(ctx, id)
	if err != nil {
		return err
	}
	if owned > 0 {
		return apperr.NewConflictError("No se puede eliminar el usuario porque tiene tareas asignadas")
	}
	err = s.userRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperr.NewConflictError("No se puede eliminar el usuario porque tiene comentarios o reuniones creadas")
	}
	return err
}

func (s *UserService) checkEmail(ctx context.Context, email string, excludeID uint) error {
	taken, err := s.userRepo.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.FieldInvalid("email", emailTakenMessage)
	}
	return nil
}

func (s *UserService) checkSector(ctx context.Context, id uint) error {
	ok, err := s.sectorRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NewNotFoundError("sector", id)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
