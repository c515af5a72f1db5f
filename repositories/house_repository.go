package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/housecup/house-points-system/models"
	"github.com/lib/pq"
)

var (
	ErrHouseNotFound     = errors.New("house not found")
	ErrHouseNameConflict = errors.New("house name conflict")
	ErrHouseInUse        = errors.New("house cannot be deleted as it is in use") // FK от students/event_results
)

type HouseRepository interface {
	Create(ctx context.Context, house *models.House) error
	GetByID(ctx context.Context, id int) (*models.House, error)
	GetAll(ctx context.Context) ([]models.House, error)
	Update(ctx context.Context, house *models.House) error
	UpdateCrestKey(ctx context.Context, id int, crestKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresHouseRepository struct {
	db *sql.DB
}

func NewPostgresHouseRepository(db *sql.DB) HouseRepository {
	return &postgresHouseRepository{db: db}
}

func (r *postgresHouseRepository) Create(ctx context.Context, house *models.House) error {
	query := `INSERT INTO houses (name, color) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, house.Name, house.Color).Scan(&house.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			if pqErr.Constraint == "houses_name_key" {
				return ErrHouseNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresHouseRepository) GetByID(ctx context.Context, id int) (*models.House, error) {
	query := `SELECT id, name, color, crest_key FROM houses WHERE id = $1`

	var house models.House
	err := r.db.QueryRowContext(ctx, query, id).Scan(&house.ID, &house.Name, &house.Color, &house.CrestKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	return &house, nil
}

func (r *postgresHouseRepository) GetAll(ctx context.Context) ([]models.House, error) {
	query := `SELECT id, name, color, crest_key FROM houses ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	houses := make([]models.House, 0, 4)
	for rows.Next() {
		var house models.House
		if scanErr := rows.Scan(&house.ID, &house.Name, &house.Color, &house.CrestKey); scanErr != nil {
			return nil, scanErr
		}
		houses = append(houses, house)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return houses, nil
}

func (r *postgresHouseRepository) Update(ctx context.Context, house *models.House) error {
	query := `UPDATE houses SET name = $1, color = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, house.Name, house.Color, house.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "houses_name_key" {
				return ErrHouseNameConflict
			}
		}
		return err
	}
	return checkAffectedRows(result, ErrHouseNotFound)
}

func (r *postgresHouseRepository) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	query := `UPDATE houses SET crest_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, crestKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrHouseNotFound)
}

func (r *postgresHouseRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM houses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrHouseInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrHouseNotFound)
}
