package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/housecup/house-points-system/models"
	"github.com/lib/pq"
)

var (
	ErrEventNotFound           = errors.New("event not found")
	ErrEventResultHouseInvalid = errors.New("event result house conflict or invalid")
	ErrEventResultDuplicate    = errors.New("duplicate event result for house")
)

// EventWithCount - событие вместе с числом участвовавших домов.
type EventWithCount struct {
	models.Event
	HousesParticipated int `json:"houses_participated"`
}

type EventRepository interface {
	// CreateWithResults inserts the event and all of its results in a
	// single transaction. Either everything persists or nothing does:
	// a partially recorded event would silently undercount
	// participation, so any failure rolls the whole write back.
	CreateWithResults(ctx context.Context, event *models.Event, results []models.EventResult) error
	GetByID(ctx context.Context, id int) (*models.Event, error)
	ListWithCounts(ctx context.Context) ([]EventWithCount, error)
	ListResults(ctx context.Context, eventID int) ([]models.EventResult, error)
	ListAllResults(ctx context.Context) ([]models.EventResult, error)
	ListAll(ctx context.Context) ([]models.Event, error)
	Delete(ctx context.Context, id int) error
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) CreateWithResults(ctx context.Context, event *models.Event, results []models.EventResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			_ = tx.Rollback()
		}
	}()

	if txErr = insertEvent(ctx, tx, event); txErr != nil {
		return txErr
	}
	for i := range results {
		results[i].EventID = event.ID
		if txErr = insertEventResult(ctx, tx, &results[i]); txErr != nil {
			return txErr
		}
	}

	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit event write: %w", txErr)
	}
	return nil
}

func insertEvent(ctx context.Context, exec SQLExecutor, event *models.Event) error {
	query := `
		INSERT INTO events (event_date, description, category)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := exec.QueryRowContext(ctx, query, event.Date, event.Description, event.Category).
		Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func insertEventResult(ctx context.Context, exec SQLExecutor, result *models.EventResult) error {
	query := `
		INSERT INTO event_results (event_id, house_id, points_earned, rank)
		VALUES ($1, $2, $3, $4)`
	_, err := exec.ExecContext(ctx, query, result.EventID, result.HouseID, result.PointsEarned, result.Rank)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23503": // foreign_key_violation
				return fmt.Errorf("house %d: %w", result.HouseID, ErrEventResultHouseInvalid)
			case "23505": // unique_violation на (event_id, house_id)
				return fmt.Errorf("house %d: %w", result.HouseID, ErrEventResultDuplicate)
			}
		}
		return fmt.Errorf("failed to insert result for house %d: %w", result.HouseID, err)
	}
	return nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `SELECT id, event_date, description, category, created_at FROM events WHERE id = $1`

	var event models.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Date, &event.Description, &event.Category, &event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *postgresEventRepository) ListWithCounts(ctx context.Context) ([]EventWithCount, error) {
	query := `
		SELECT e.id, e.event_date, e.description, e.category, e.created_at,
		       COUNT(er.house_id)
		FROM events e
		LEFT JOIN event_results er ON e.id = er.event_id
		GROUP BY e.id
		ORDER BY e.event_date DESC, e.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]EventWithCount, 0)
	for rows.Next() {
		var ec EventWithCount
		if scanErr := rows.Scan(
			&ec.ID, &ec.Date, &ec.Description, &ec.Category, &ec.CreatedAt,
			&ec.HousesParticipated,
		); scanErr != nil {
			return nil, scanErr
		}
		events = append(events, ec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *postgresEventRepository) ListResults(ctx context.Context, eventID int) ([]models.EventResult, error) {
	query := `
		SELECT er.event_id, er.house_id, er.points_earned, er.rank,
		       h.name, h.color
		FROM event_results er
		JOIN houses h ON er.house_id = h.id
		WHERE er.event_id = $1
		ORDER BY er.rank ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.EventResult, 0, 4)
	for rows.Next() {
		var res models.EventResult
		var house models.House
		if scanErr := rows.Scan(
			&res.EventID, &res.HouseID, &res.PointsEarned, &res.Rank,
			&house.Name, &house.Color,
		); scanErr != nil {
			return nil, scanErr
		}
		house.ID = res.HouseID
		res.House = &house
		results = append(results, res)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *postgresEventRepository) ListAllResults(ctx context.Context) ([]models.EventResult, error) {
	query := `SELECT event_id, house_id, points_earned, rank FROM event_results`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.EventResult, 0)
	for rows.Next() {
		var res models.EventResult
		if scanErr := rows.Scan(&res.EventID, &res.HouseID, &res.PointsEarned, &res.Rank); scanErr != nil {
			return nil, scanErr
		}
		results = append(results, res)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *postgresEventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	query := `SELECT id, event_date, description, category, created_at FROM events ORDER BY event_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var event models.Event
		if scanErr := rows.Scan(&event.ID, &event.Date, &event.Description, &event.Category, &event.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Delete удаляет событие; его результаты удаляются каскадом (FK ON DELETE CASCADE).
func (r *postgresEventRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}
