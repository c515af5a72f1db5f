package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/housecup/house-points-system/models"
	"github.com/lib/pq"
)

var (
	ErrStudentNotFound         = errors.New("student not found")
	ErrStudentHouseInvalid     = errors.New("student house conflict or invalid")
	ErrStudentClassYearInvalid = errors.New("student class year conflict or invalid")
)

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int) (*models.Student, error)
	// List returns all students with house and class year populated.
	// search, если не пуст, фильтрует по имени/фамилии/email (ILIKE).
	List(ctx context.Context, search string) ([]models.Student, error)
	CountByHouse(ctx context.Context) (map[int]int, error)
	Delete(ctx context.Context, id int) error
}

type postgresStudentRepository struct {
	db *sql.DB
}

func NewPostgresStudentRepository(db *sql.DB) StudentRepository {
	return &postgresStudentRepository{db: db}
}

func (r *postgresStudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (fname, lname, email, house_id, class_year_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		student.FirstName, student.LastName, student.Email, student.HouseID, student.ClassYearID,
	).Scan(&student.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			switch pqErr.Constraint {
			case "students_house_id_fkey":
				return ErrStudentHouseInvalid
			case "students_class_year_id_fkey":
				return ErrStudentClassYearInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresStudentRepository) GetByID(ctx context.Context, id int) (*models.Student, error) {
	query := `
		SELECT id, fname, lname, email, house_id, class_year_id
		FROM students
		WHERE id = $1`

	var student models.Student
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&student.ID, &student.FirstName, &student.LastName,
		&student.Email, &student.HouseID, &student.ClassYearID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *postgresStudentRepository) List(ctx context.Context, search string) ([]models.Student, error) {
	query := `
		SELECT s.id, s.fname, s.lname, s.email, s.house_id, s.class_year_id,
		       h.name, h.color,
		       cy.grad_year, cy.name, cy.display_order
		FROM students s
		JOIN houses h ON s.house_id = h.id
		JOIN class_years cy ON s.class_year_id = cy.id`

	args := make([]interface{}, 0, 1)
	if search != "" {
		query += `
		WHERE s.fname ILIKE $1 OR s.lname ILIKE $1 OR s.email ILIKE $1
		   OR (s.fname || ' ' || s.lname) ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += `
		ORDER BY h.name, cy.display_order, s.lname, s.fname`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		var student models.Student
		var house models.House
		var classYear models.ClassYear
		if scanErr := rows.Scan(
			&student.ID, &student.FirstName, &student.LastName,
			&student.Email, &student.HouseID, &student.ClassYearID,
			&house.Name, &house.Color,
			&classYear.GradYear, &classYear.Name, &classYear.DisplayOrder,
		); scanErr != nil {
			return nil, scanErr
		}
		house.ID = student.HouseID
		classYear.ID = student.ClassYearID
		student.House = &house
		student.ClassYear = &classYear
		students = append(students, student)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *postgresStudentRepository) CountByHouse(ctx context.Context) (map[int]int, error) {
	query := `SELECT house_id, COUNT(DISTINCT id) FROM students GROUP BY house_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var houseID, count int
		if scanErr := rows.Scan(&houseID, &count); scanErr != nil {
			return nil, scanErr
		}
		counts[houseID] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *postgresStudentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStudentNotFound)
}
