package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCreateHouse(t *testing.T) {
	svc := NewHouseService(&fakeHouseRepo{}, nil)

	house, err := svc.CreateHouse(context.Background(), CreateHouseInput{Name: " Athena ", Color: "grey"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if house.Name != "Athena" {
		t.Errorf("expected trimmed name, got %q", house.Name)
	}
	if house.ID == 0 {
		t.Error("expected assigned house id")
	}
}

func TestCreateHouseBlankName(t *testing.T) {
	repo := &fakeHouseRepo{}
	svc := NewHouseService(repo, nil)

	_, err := svc.CreateHouse(context.Background(), CreateHouseInput{Name: "   "})
	if !errors.Is(err, ErrHouseNameRequired) {
		t.Fatalf("expected ErrHouseNameRequired, got %v", err)
	}
	if len(repo.houses) != 0 {
		t.Error("rejected house must not be inserted")
	}
}

func TestUploadHouseCrestWithoutStorage(t *testing.T) {
	svc := NewHouseService(&fakeHouseRepo{houses: fourHouses()}, nil)

	_, err := svc.UploadHouseCrest(context.Background(), 1, strings.NewReader("png bytes"), "image/png")
	if !errors.Is(err, ErrCrestStorageUnavailable) {
		t.Fatalf("expected ErrCrestStorageUnavailable, got %v", err)
	}
}

func TestDeleteHouseNotFound(t *testing.T) {
	svc := NewHouseService(&fakeHouseRepo{}, nil)

	err := svc.DeleteHouse(context.Background(), 42)
	if !errors.Is(err, ErrHouseNotFound) {
		t.Fatalf("expected ErrHouseNotFound, got %v", err)
	}
}
