package service

import (
	"context"
	"errors"
	"strings"

	"universo/internal/apperr"
	"universo/internal/model"
	"universo/internal/repository"
)

// ResourceInput describes a directory entry. Empty Type and Visibility
// default to OTHER and PUBLIC.
type ResourceInput struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	URL         string  `json:"url" validate:"required"`
	Type        string  `json:"type" validate:"omitempty,oneof=FOLDER DOCUMENT SPREADSHEET OTHER"`
	Visibility  string  `json:"visibility" validate:"omitempty,oneof=PUBLIC ADMIN_ONLY"`
	SectorID    *ID     `json:"sectorId" validate:"omitempty,entity_id"`
}

var resourceMessages = map[string]string{
	"title":      "El título es obligatorio",
	"url":        "La URL es obligatoria",
	"type":       "Tipo inválido",
	"visibility": "Visibilidad inválida",
	"sectorId":   "Sector ID debe ser numérico",
}

// ResourceService manages the shared link directory.
type ResourceService struct {
	resourceRepo *repository.ResourceRepository
	sectorRepo   *repository.SectorRepository
}

func NewResourceService(resourceRepo *repository.ResourceRepository, sectorRepo *repository.SectorRepository) *ResourceService {
	return &ResourceService{resourceRepo: resourceRepo, sectorRepo: sectorRepo}
}

// List returns the directory newest first. Restricted entries are included
// only for administrators.
func (s *ResourceService) List(ctx context.Context, admin bool) ([]model.Resource, error) {
	return s.resourceRepo.List(ctx, admin)
}

func (s *ResourceService) Create(ctx context.Context, input ResourceInput) (*model.Resource, error) {
	var resource model.Resource
	if err := s.apply(ctx, &resource, input); err != nil {
		return nil, err
	}
	if err := s.resourceRepo.Create(ctx, &resource); err != nil {
		return nil, err
	}
	return s.resourceRepo.FindByID(ctx, resource.ID)
}

// Update overwrites every field of the resource with input.
func (s *ResourceService) Update(ctx context.Context, id uint, input ResourceInput) (*model.Resource, error) {
	resource, err := s.resourceRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NewNotFoundError("resource", id)
	}
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, resource, input); err != nil {
		return nil, err
	}
	if err := s.resourceRepo.Save(ctx, resource); err != nil {
		return nil, err
	}
	return s.resourceRepo.FindByID(ctx, id)
}

func (s *ResourceService) Delete(ctx context.Context, id uint) error {
	err := s.resourceRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NewNotFoundError("resource", id)
	}
	return err
}

func (s *ResourceService) apply(ctx context.Context, resource *model.Resource, input ResourceInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.URL = strings.TrimSpace(input.URL)
	if err := check(input, resourceMessages); err != nil {
		return err
	}

	var sectorID *uint
	if input.SectorID != nil {
		n, _ := input.SectorID.Uint()
		ok, err := s.sectorRepo.Exists(ctx, n)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NewNotFoundError("sector", n)
		}
		sectorID = &n
	}

	resource.Title = input.Title
	resource.Description = optional(input.Description)
	resource.URL = input.URL
	resource.Type = model.ResourceOther
	if input.Type != "" {
		resource.Type = model.ResourceType(input.Type)
	}
	resource.Visibility = model.VisibilityPublic
	if input.Visibility != "" {
		resource.Visibility = model.Visibility(input.Visibility)
	}
	resource.SectorID = sectorID
	resource.Sector = nil
	return nil
}
