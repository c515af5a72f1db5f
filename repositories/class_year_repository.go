package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/housecup/house-points-system/models"
	"github.com/lib/pq"
)

var (
	ErrClassYearNotFound = errors.New("class year not found")
	ErrClassYearConflict = errors.New("class year grad year conflict")
	ErrClassYearInUse    = errors.New("class year cannot be deleted as it is in use")
)

type ClassYearRepository interface {
	Create(ctx context.Context, classYear *models.ClassYear) error
	GetByID(ctx context.Context, id int) (*models.ClassYear, error)
	GetAll(ctx context.Context) ([]models.ClassYear, error)
	Delete(ctx context.Context, id int) error
}

type postgresClassYearRepository struct {
	db *sql.DB
}

func NewPostgresClassYearRepository(db *sql.DB) ClassYearRepository {
	return &postgresClassYearRepository{db: db}
}

func (r *postgresClassYearRepository) Create(ctx context.Context, classYear *models.ClassYear) error {
	query := `
		INSERT INTO class_years (grad_year, name, display_order)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		classYear.GradYear, classYear.Name, classYear.DisplayOrder,
	).Scan(&classYear.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrClassYearConflict
		}
		return err
	}
	return nil
}

func (r *postgresClassYearRepository) GetByID(ctx context.Context, id int) (*models.ClassYear, error) {
	query := `SELECT id, grad_year, name, display_order FROM class_years WHERE id = $1`

	var classYear models.ClassYear
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&classYear.ID, &classYear.GradYear, &classYear.Name, &classYear.DisplayOrder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassYearNotFound
		}
		return nil, err
	}
	return &classYear, nil
}

func (r *postgresClassYearRepository) GetAll(ctx context.Context) ([]models.ClassYear, error) {
	// display_order задаётся отдельно от grad_year, сортируем только по нему.
	query := `SELECT id, grad_year, name, display_order FROM class_years ORDER BY display_order ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classYears := make([]models.ClassYear, 0, 4)
	for rows.Next() {
		var classYear models.ClassYear
		if scanErr := rows.Scan(&classYear.ID, &classYear.GradYear, &classYear.Name, &classYear.DisplayOrder); scanErr != nil {
			return nil, scanErr
		}
		classYears = append(classYears, classYear)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return classYears, nil
}

func (r *postgresClassYearRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM class_years WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrClassYearInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrClassYearNotFound)
}
