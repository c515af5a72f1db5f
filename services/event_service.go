package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/housecup/house-points-system/models"
	"github.com/housecup/house-points-system/repositories"
	"github.com/housecup/house-points-system/standings"
)

// StandingsNotifier получает свежую таблицу после каждой принятой записи.
// Реализуется realtime-хабом; nil отключает уведомления.
type StandingsNotifier interface {
	StandingsChanged(rows []standings.Row)
}

type EventService interface {
	// SubmitEventResults is the write gateway for scoring: it validates
	// the whole submission up front and persists the event together
	// with all of its results atomically.
	SubmitEventResults(ctx context.Context, input SubmitEventResultsInput) (*models.Event, error)
	GetEventDetail(ctx context.Context, eventID int) (*models.Event, error)
	ListEvents(ctx context.Context) ([]repositories.EventWithCount, error)
	DeleteEvent(ctx context.Context, eventID int) error
}

type SubmitEventResultsInput struct {
	Date        time.Time          `json:"date"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Results     map[int]HouseScore `json:"results"` // keyed by house id
}

type HouseScore struct {
	Points int `json:"points"`
	Rank   int `json:"rank"`
}

type eventService struct {
	eventRepo repositories.EventRepository
	houseRepo repositories.HouseRepository
	notifier  StandingsNotifier
	logger    *slog.Logger
}

func NewEventService(
	eventRepo repositories.EventRepository,
	houseRepo repositories.HouseRepository,
	notifier StandingsNotifier,
	logger *slog.Logger,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		houseRepo: houseRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *eventService) SubmitEventResults(ctx context.Context, input SubmitEventResultsInput) (*models.Event, error) {
	if input.Date.IsZero() {
		return nil, ErrEventDateRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrEventDescriptionRequired
	}
	if err := validateResultSet(input.Results); err != nil {
		return nil, err
	}

	houses, err := s.houseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load houses for validation: %w", err)
	}
	known := make(map[int]bool, len(houses))
	for _, h := range houses {
		known[h.ID] = true
	}
	for houseID := range input.Results {
		if !known[houseID] {
			return nil, fmt.Errorf("%w (id: %d)", ErrHouseNotFound, houseID)
		}
	}

	event := &models.Event{
		Date:        input.Date,
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
	}
	results := make([]models.EventResult, 0, len(input.Results))
	for houseID, score := range input.Results {
		results = append(results, models.EventResult{
			HouseID:      houseID,
			PointsEarned: score.Points,
			Rank:         score.Rank,
		})
	}

	if err := s.eventRepo.CreateWithResults(ctx, event, results); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	event.Results = results

	s.broadcastStandings(ctx)
	return event, nil
}

// validateResultSet проверяет инварианты набора результатов:
// непустой набор, очки >= 0, ранги без повторов и в пределах
// [1, число участников].
func validateResultSet(results map[int]HouseScore) error {
	if len(results) == 0 {
		return ErrEventNoResults
	}

	seenRanks := make(map[int]int, len(results))
	for houseID, score := range results {
		if score.Points < 0 {
			return fmt.Errorf("%w (house %d: %d)", ErrEventNegativePoints, houseID, score.Points)
		}
		if score.Rank < 1 || score.Rank > len(results) {
			return fmt.Errorf("%w (house %d: rank %d of %d participants)",
				ErrEventRankOutOfRange, houseID, score.Rank, len(results))
		}
		if otherID, taken := seenRanks[score.Rank]; taken {
			return fmt.Errorf("%w (rank %d claimed by houses %d and %d)",
				ErrEventRankCollision, score.Rank, otherID, houseID)
		}
		seenRanks[score.Rank] = houseID
	}
	return nil
}

func (s *eventService) GetEventDetail(ctx context.Context, eventID int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}

	results, err := s.eventRepo.ListResults(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results for event %d: %w", eventID, err)
	}
	event.Results = results
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]repositories.EventWithCount, error) {
	events, err := s.eventRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID int) error {
	err := s.eventRepo.Delete(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event %d: %w", eventID, err)
	}

	s.broadcastStandings(ctx)
	return nil
}

func (s *eventService) broadcastStandings(ctx context.Context) {
	if s.notifier == nil {
		return
	}

	houses, err := s.houseRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to load houses for standings broadcast", slog.Any("error", err))
		return
	}
	results, err := s.eventRepo.ListAllResults(ctx)
	if err != nil {
		s.logger.Error("failed to load results for standings broadcast", slog.Any("error", err))
		return
	}
	s.notifier.StandingsChanged(standings.Compute(houses, results))
}
