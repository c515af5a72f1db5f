package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/housecup/house-points-system/models"
	"github.com/housecup/house-points-system/repositories"
)

type ClassYearService interface {
	CreateClassYear(ctx context.Context, input CreateClassYearInput) (*models.ClassYear, error)
	GetAllClassYears(ctx context.Context) ([]models.ClassYear, error)
	DeleteClassYear(ctx context.Context, id int) error
}

type CreateClassYearInput struct {
	GradYear     int    `json:"grad_year"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

type classYearService struct {
	classYearRepo repositories.ClassYearRepository
}

func NewClassYearService(classYearRepo repositories.ClassYearRepository) ClassYearService {
	return &classYearService{classYearRepo: classYearRepo}
}

func (s *classYearService) CreateClassYear(ctx context.Context, input CreateClassYearInput) (*models.ClassYear, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrClassYearNameRequired
	}

	classYear := &models.ClassYear{
		GradYear:     input.GradYear,
		Name:         name,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.classYearRepo.Create(ctx, classYear); err != nil {
		if errors.Is(err, repositories.ErrClassYearConflict) {
			return nil, ErrClassYearConflict
		}
		return nil, fmt.Errorf("failed to create class year: %w", err)
	}
	return classYear, nil
}

func (s *classYearService) GetAllClassYears(ctx context.Context) ([]models.ClassYear, error) {
	classYears, err := s.classYearRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get class years: %w", err)
	}
	return classYears, nil
}

func (s *classYearService) DeleteClassYear(ctx context.Context, id int) error {
	err := s.classYearRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrClassYearNotFound):
			return ErrClassYearNotFound
		case errors.Is(err, repositories.ErrClassYearInUse):
			return ErrClassYearInUse
		}
		return fmt.Errorf("failed to delete class year %d: %w", id, err)
	}
	return nil
}
