package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"universo/internal/apperr"
	"universo/internal/model"
	"universo/internal/repository"
)

type SectorInput struct {
	Name string `json:"name" validate:"required"`
}

var sectorMessages = map[string]string{
	"name": "El nombre es obligatorio",
}

// SectorService manages the organisational units users belong to.
type SectorService struct {
	sectorRepo *repository.SectorRepository
	userRepo   *repository.UserRepository
}

func NewSectorService(sectorRepo *repository.SectorRepository, userRepo *repository.UserRepository) *SectorService {
	return &SectorService{sectorRepo: sectorRepo, userRepo: userRepo}
}

func (s *SectorService) List(ctx context.Context) ([]model.Sector, error) {
	return s.sectorRepo.List(ctx)
}

func (s *SectorService) Get(ctx context.Context, id uint) (*model.Sector, error) {
	sector, err := s.sectorRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NewNotFoundError("sector", id)
	}
	return sector, err
}

func (s *SectorService) Create(ctx context.Context, input SectorInput) (*model.Sector, error) {
	name, err := s.validName(ctx, input, 0)
	if err != nil {
		return nil, err
	}
	sector := model.Sector{Name: name}
	if err := s.sectorRepo.Create(ctx, &sector); err != nil {
		return nil, duplicateField(err, "name", "Ya existe un sector con ese nombre")
	}
	return &sector, nil
}

func (s *SectorService) Update(ctx context.Context, id uint, input SectorInput) (*model.Sector, error) {
	sector, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := s.validName(ctx, input, id)
	if err != nil {
		return nil, err
	}
	sector.Name = name
	if err := s.sectorRepo.Save(ctx, sector); err != nil {
		return nil, duplicateField(err, "name", "Ya existe un sector con ese nombre")
	}
	return sector, nil
}

// Delete removes a sector that no user belongs to.
func (s *SectorService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	members, err := s.userRepo.CountBySector(ctx, id)
	if err != nil {
		return err
	}
	if members > 0 {
		return apperr.NewConflictError("No se puede eliminar el sector porque tiene usuarios asignados.")
	}
	err = s.sectorRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperr.NewConflictError("No se puede eliminar el sector porque tiene tareas o recursos asociados.")
	}
	return err
}

func (s *SectorService) validName(ctx context.Context, input SectorInput, id uint) (string, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := check(input, sectorMessages); err != nil {
		return "", err
	}
	taken, err := s.sectorRepo.NameTaken(ctx, input.Name, id)
	if err != nil {
		return "", err
	}
	if taken {
		return "", apperr.FieldInvalid("name", "Ya existe un sector con ese nombre")
	}
	return input.Name, nil
}

// duplicateField reports a unique-index violation that slipped past the
// pre-check as a validation error on field.
func duplicateField(err error, field, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.FieldInvalid(field, msg)
	}
	return err
}
