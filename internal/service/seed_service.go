package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"universo/internal/auth"
	"universo/internal/config"
	"universo/internal/model"
	"universo/internal/repository"
)

// SeedService makes sure a fresh database has a sector and an administrator
// to log in with.
type SeedService struct {
	sectorRepo *repository.SectorRepository
	userRepo   *repository.UserRepository
	logger     *log.Logger
}

func NewSeedService(sectorRepo *repository.SectorRepository, userRepo *repository.UserRepository, logger *log.Logger) *SeedService {
	return &SeedService{sectorRepo: sectorRepo, userRepo: userRepo, logger: logger}
}

// Run creates the default sector and administrator when they are missing.
// An existing administrator is left untouched, password included.
func (s *SeedService) Run(ctx context.Context, cfg config.Seed) error {
	sector, created, err := s.sectorRepo.GetOrCreate(ctx, cfg.SectorName)
	if err != nil {
		return fmt.Errorf("seed sector: %w", err)
	}
	if created {
		s.logger.Info("seeded sector", "name", sector.Name, "id", sector.ID)
	}

	_, err = s.userRepo.FindByEmail(ctx, cfg.AdminEmail)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	admin := model.User{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: hash,
		Role:     model.RoleAdmin,
		SectorID: sector.ID,
	}
	if err := s.userRepo.Create(ctx, &admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.logger.Warn("seeded administrator, change its password", "email", admin.Email)
	return nil
}
