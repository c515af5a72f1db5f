package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/housecup/house-points-system/models"
	"github.com/housecup/house-points-system/repositories"
	"github.com/housecup/house-points-system/standings"
	"golang.org/x/sync/errgroup"
)

// StandingsService - читающий фасад над журналом результатов.
// Никакого кэша: каждый вызов пересчитывает таблицу из полного лога.
type StandingsService interface {
	ListStandings(ctx context.Context) ([]standings.Row, error)
	// GetLeader returns (nil, nil) when there are no houses yet;
	// an empty result log is not an error.
	GetLeader(ctx context.Context) (*standings.Row, error)
	BreakdownByCategory(ctx context.Context) ([]standings.CategoryLine, error)
	ListStudentsByStanding(ctx context.Context, topN *int) ([]StudentStandingRow, error)
	GetHouseSummary(ctx context.Context, houseID int) (*HouseSummary, error)
}

// StudentStandingRow - студент вместе с текущим местом его дома.
type StudentStandingRow struct {
	HouseStanding    int     `json:"house_standing"`
	HouseName        string  `json:"house_name"`
	Color            string  `json:"color"`
	HouseTotalPoints int     `json:"house_total_points"`
	ClassYear        string  `json:"class_year"`
	StudentID        int     `json:"student_id"`
	StudentName      string  `json:"student_name"`
	Email            *string `json:"email,omitempty"`
}

// HouseSummary - сводка по одному дому: строка таблицы плюс метрики
// эффективности (очки на студента, средний ранг).
type HouseSummary struct {
	Row              standings.Row `json:"row"`
	StudentCount     int           `json:"student_count"`
	PointsPerStudent float64       `json:"points_per_student"`
	AverageRank      *float64      `json:"average_rank,omitempty"`
}

type standingsService struct {
	houseRepo   repositories.HouseRepository
	eventRepo   repositories.EventRepository
	studentRepo repositories.StudentRepository
}

func NewStandingsService(
	houseRepo repositories.HouseRepository,
	eventRepo repositories.EventRepository,
	studentRepo repositories.StudentRepository,
) StandingsService {
	return &standingsService{
		houseRepo:   houseRepo,
		eventRepo:   eventRepo,
		studentRepo: studentRepo,
	}
}

// loadSnapshot забирает дома и полный лог результатов параллельно.
func (s *standingsService) loadSnapshot(ctx context.Context) ([]models.House, []models.EventResult, error) {
	var (
		houses  []models.House
		results []models.EventResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		houses, err = s.houseRepo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = s.eventRepo.ListAllResults(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("failed to load standings snapshot: %w", err)
	}
	return houses, results, nil
}

func (s *standingsService) ListStandings(ctx context.Context) ([]standings.Row, error) {
	houses, results, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return standings.Compute(houses, results), nil
}

func (s *standingsService) GetLeader(ctx context.Context) (*standings.Row, error) {
	rows, err := s.ListStandings(ctx)
	if err != nil {
		return nil, err
	}
	return standings.Leader(rows), nil
}

func (s *standingsService) BreakdownByCategory(ctx context.Context) ([]standings.CategoryLine, error) {
	var (
		houses  []models.House
		events  []models.Event
		results []models.EventResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		houses, err = s.houseRepo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.eventRepo.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = s.eventRepo.ListAllResults(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load breakdown snapshot: %w", err)
	}

	return standings.Breakdown(houses, events, results), nil
}

func (s *standingsService) ListStudentsByStanding(ctx context.Context, topN *int) ([]StudentStandingRow, error) {
	var (
		houses   []models.House
		results  []models.EventResult
		students []models.Student
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		houses, err = s.houseRepo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = s.eventRepo.ListAllResults(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		students, err = s.studentRepo.List(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load roster snapshot: %w", err)
	}

	rowByHouse := make(map[int]standings.Row)
	for _, row := range standings.Compute(houses, results) {
		rowByHouse[row.HouseID] = row
	}

	out := make([]StudentStandingRow, 0, len(students))
	for _, student := range students {
		row, ok := rowByHouse[student.HouseID]
		if !ok {
			continue
		}
		if topN != nil && row.Position > *topN {
			continue
		}
		out = append(out, StudentStandingRow{
			HouseStanding:    row.Position,
			HouseName:        row.HouseName,
			Color:            row.Color,
			HouseTotalPoints: row.TotalPoints,
			ClassYear:        student.ClassYear.Name,
			StudentID:        student.ID,
			StudentName:      student.FullName(),
			Email:            student.Email,
		})
	}

	// List уже отдаёт студентов в порядке display_order/lname/fname
	// внутри дома; стабильная сортировка по месту дома сохраняет его.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].HouseStanding < out[j].HouseStanding
	})

	return out, nil
}

func (s *standingsService) GetHouseSummary(ctx context.Context, houseID int) (*HouseSummary, error) {
	if _, err := s.houseRepo.GetByID(ctx, houseID); err != nil {
		if errors.Is(err, repositories.ErrHouseNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("failed to get house %d: %w", houseID, err)
	}

	houses, results, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.studentRepo.CountByHouse(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	for _, row := range standings.Compute(houses, results) {
		if row.HouseID != houseID {
			continue
		}
		summary := &HouseSummary{
			Row:              row,
			StudentCount:     counts[houseID],
			PointsPerStudent: standings.PointsPerStudent(row.TotalPoints, counts[houseID]),
		}
		if avg, ok := standings.AverageRanks(results)[houseID]; ok {
			summary.AverageRank = &avg
		}
		return summary, nil
	}
	return nil, ErrHouseNotFound
}
