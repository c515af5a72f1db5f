package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/housecup/house-points-system/models"
	"github.com/housecup/house-points-system/repositories"
)

type StudentService interface {
	// AddStudent checks that the referenced house and class year exist
	// before inserting anything. Duplicate submissions create duplicate
	// students: upstream never defined a dedup key.
	AddStudent(ctx context.Context, input AddStudentInput) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int) (*models.Student, error)
	ListStudents(ctx context.Context, search string) ([]models.Student, error)
	DeleteStudent(ctx context.Context, id int) error
}

type AddStudentInput struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       *string `json:"email,omitempty"`
	HouseID     int     `json:"house_id"`
	ClassYearID int     `json:"class_year_id"`
}

type studentService struct {
	studentRepo   repositories.StudentRepository
	houseRepo     repositories.HouseRepository
	classYearRepo repositories.ClassYearRepository
}

func NewStudentService(
	studentRepo repositories.StudentRepository,
	houseRepo repositories.HouseRepository,
	classYearRepo repositories.ClassYearRepository,
) StudentService {
	return &studentService{
		studentRepo:   studentRepo,
		houseRepo:     houseRepo,
		classYearRepo: classYearRepo,
	}
}

func (s *studentService) AddStudent(ctx context.Context, input AddStudentInput) (*models.Student, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrStudentNameRequired
	}

	if _, err := s.houseRepo.GetByID(ctx, input.HouseID); err != nil {
		if errors.Is(err, repositories.ErrHouseNotFound) {
			return nil, fmt.Errorf("%w (id: %d)", ErrHouseNotFound, input.HouseID)
		}
		return nil, fmt.Errorf("failed to check house %d: %w", input.HouseID, err)
	}
	if _, err := s.classYearRepo.GetByID(ctx, input.ClassYearID); err != nil {
		if errors.Is(err, repositories.ErrClassYearNotFound) {
			return nil, fmt.Errorf("%w (id: %d)", ErrClassYearNotFound, input.ClassYearID)
		}
		return nil, fmt.Errorf("failed to check class year %d: %w", input.ClassYearID, err)
	}

	student := &models.Student{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       input.Email,
		HouseID:     input.HouseID,
		ClassYearID: input.ClassYearID,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		// Гонка между проверкой и вставкой всё же возможна;
		// FK-ошибка хранилища переводится в тот же NotFound.
		switch {
		case errors.Is(err, repositories.ErrStudentHouseInvalid):
			return nil, fmt.Errorf("%w (id: %d)", ErrHouseNotFound, input.HouseID)
		case errors.Is(err, repositories.ErrStudentClassYearInvalid):
			return nil, fmt.Errorf("%w (id: %d)", ErrClassYearNotFound, input.ClassYearID)
		}
		return nil, fmt.Errorf("failed to add student: %w", err)
	}
	return student, nil
}

func (s *studentService) GetStudentByID(ctx context.Context, id int) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student %d: %w", id, err)
	}
	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context, search string) ([]models.Student, error) {
	students, err := s.studentRepo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *studentService) DeleteStudent(ctx context.Context, id int) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to delete student %d: %w", id, err)
	}
	return nil
}
