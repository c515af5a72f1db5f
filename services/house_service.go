package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/housecup/house-points-system/models"
	"github.com/housecup/house-points-system/repositories"
	"github.com/housecup/house-points-system/storage"
)

type HouseService interface {
	CreateHouse(ctx context.Context, input CreateHouseInput) (*models.House, error)
	GetHouseByID(ctx context.Context, id int) (*models.House, error)
	GetAllHouses(ctx context.Context) ([]models.House, error)
	UpdateHouse(ctx context.Context, id int, input CreateHouseInput) (*models.House, error)
	// DeleteHouse fails with an integrity error while the house is
	// referenced by students or event results.
	DeleteHouse(ctx context.Context, id int) error
	UploadHouseCrest(ctx context.Context, id int, file io.Reader, contentType string) (*models.House, error)
}

type CreateHouseInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type houseService struct {
	houseRepo repositories.HouseRepository
	uploader  storage.FileUploader
}

func NewHouseService(houseRepo repositories.HouseRepository, uploader storage.FileUploader) HouseService {
	return &houseService{
		houseRepo: houseRepo,
		uploader:  uploader,
	}
}

func (s *houseService) CreateHouse(ctx context.Context, input CreateHouseInput) (*models.House, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHouseNameRequired
	}

	house := &models.House{
		Name:  name,
		Color: strings.TrimSpace(input.Color),
	}
	if err := s.houseRepo.Create(ctx, house); err != nil {
		if errors.Is(err, repositories.ErrHouseNameConflict) {
			return nil, ErrHouseNameConflict
		}
		return nil, fmt.Errorf("failed to create house: %w", err)
	}
	return house, nil
}

func (s *houseService) GetHouseByID(ctx context.Context, id int) (*models.House, error) {
	house, err := s.houseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrHouseNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("failed to get house %d: %w", id, err)
	}
	populateHouseCrestURL(house, s.uploader)
	return house, nil
}

func (s *houseService) GetAllHouses(ctx context.Context) ([]models.House, error) {
	houses, err := s.houseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all houses: %w", err)
	}
	for i := range houses {
		populateHouseCrestURL(&houses[i], s.uploader)
	}
	return houses, nil
}

func (s *houseService) UpdateHouse(ctx context.Context, id int, input CreateHouseInput) (*models.House, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHouseNameRequired
	}

	house := &models.House{
		ID:    id,
		Name:  name,
		Color: strings.TrimSpace(input.Color),
	}
	if err := s.houseRepo.Update(ctx, house); err != nil {
		switch {
		case errors.Is(err, repositories.ErrHouseNotFound):
			return nil, ErrHouseNotFound
		case errors.Is(err, repositories.ErrHouseNameConflict):
			return nil, ErrHouseNameConflict
		}
		return nil, fmt.Errorf("failed to update house %d: %w", id, err)
	}
	return house, nil
}

func (s *houseService) DeleteHouse(ctx context.Context, id int) error {
	err := s.houseRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrHouseNotFound):
			return ErrHouseNotFound
		case errors.Is(err, repositories.ErrHouseInUse):
			return ErrHouseInUse
		}
		return fmt.Errorf("failed to delete house %d: %w", id, err)
	}
	return nil
}

func (s *houseService) UploadHouseCrest(ctx context.Context, id int, file io.Reader, contentType string) (*models.House, error) {
	if s.uploader == nil {
		return nil, ErrCrestStorageUnavailable
	}

	house, err := s.houseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrHouseNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("failed to get house %d: %w", id, err)
	}

	key := fmt.Sprintf("houses/%d/crest", house.ID)
	uploaded, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for house %d: %w", id, err)
	}

	if err := s.houseRepo.UpdateCrestKey(ctx, house.ID, &uploaded.Key); err != nil {
		return nil, fmt.Errorf("failed to save crest key for house %d: %w", id, err)
	}
	house.CrestKey = &uploaded.Key
	populateHouseCrestURL(house, s.uploader)
	return house, nil
}
