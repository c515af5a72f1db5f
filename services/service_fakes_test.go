package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/housecup/house-points-system/models"
	"github.com/housecup/house-points-system/repositories"
	"github.com/housecup/house-points-system/standings"
)

// In-memory репозитории для тестов сервисов.

type fakeHouseRepo struct {
	houses []models.House
	err    error
}

func (f *fakeHouseRepo) Create(ctx context.Context, house *models.House) error {
	if f.err != nil {
		return f.err
	}
	house.ID = len(f.houses) + 1
	f.houses = append(f.houses, *house)
	return nil
}

func (f *fakeHouseRepo) GetByID(ctx context.Context, id int) (*models.House, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.houses {
		if f.houses[i].ID == id {
			h := f.houses[i]
			return &h, nil
		}
	}
	return nil, repositories.ErrHouseNotFound
}

func (f *fakeHouseRepo) GetAll(ctx context.Context) ([]models.House, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.houses, nil
}

func (f *fakeHouseRepo) Update(ctx context.Context, house *models.House) error {
	for i := range f.houses {
		if f.houses[i].ID == house.ID {
			f.houses[i] = *house
			return nil
		}
	}
	return repositories.ErrHouseNotFound
}

func (f *fakeHouseRepo) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	for i := range f.houses {
		if f.houses[i].ID == id {
			f.houses[i].CrestKey = crestKey
			return nil
		}
	}
	return repositories.ErrHouseNotFound
}

func (f *fakeHouseRepo) Delete(ctx context.Context, id int) error {
	for i := range f.houses {
		if f.houses[i].ID == id {
			f.houses = append(f.houses[:i], f.houses[i+1:]...)
			return nil
		}
	}
	return repositories.ErrHouseNotFound
}

type fakeEventRepo struct {
	events  []models.Event
	results []models.EventResult
	err     error

	createCalls int
}

func (f *fakeEventRepo) CreateWithResults(ctx context.Context, event *models.Event, results []models.EventResult) error {
	f.createCalls++
	if f.err != nil {
		return f.err
	}
	event.ID = len(f.events) + 1
	f.events = append(f.events, *event)
	for _, r := range results {
		r.EventID = event.ID
		f.results = append(f.results, r)
	}
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int) (*models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.events {
		if f.events[i].ID == id {
			e := f.events[i]
			return &e, nil
		}
	}
	return nil, repositories.ErrEventNotFound
}

func (f *fakeEventRepo) ListWithCounts(ctx context.Context) ([]repositories.EventWithCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]repositories.EventWithCount, 0, len(f.events))
	for _, e := range f.events {
		count := 0
		for _, r := range f.results {
			if r.EventID == e.ID {
				count++
			}
		}
		out = append(out, repositories.EventWithCount{Event: e, HousesParticipated: count})
	}
	return out, nil
}

func (f *fakeEventRepo) ListResults(ctx context.Context, eventID int) ([]models.EventResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.EventResult
	for _, r := range f.results {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListAllResults(ctx context.Context) ([]models.EventResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int) error {
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			kept := f.results[:0]
			for _, r := range f.results {
				if r.EventID != id {
					kept = append(kept, r)
				}
			}
			f.results = kept
			return nil
		}
	}
	return repositories.ErrEventNotFound
}

type fakeStudentRepo struct {
	students []models.Student
	err      error

	createCalls int
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	f.createCalls++
	if f.err != nil {
		return f.err
	}
	student.ID = len(f.students) + 1
	f.students = append(f.students, *student)
	return nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id int) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.students {
		if f.students[i].ID == id {
			s := f.students[i]
			return &s, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (f *fakeStudentRepo) List(ctx context.Context, search string) ([]models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.students, nil
}

func (f *fakeStudentRepo) CountByHouse(ctx context.Context) (map[int]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[int]int)
	for _, s := range f.students {
		counts[s.HouseID]++
	}
	return counts, nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id int) error {
	for i := range f.students {
		if f.students[i].ID == id {
			f.students = append(f.students[:i], f.students[i+1:]...)
			return nil
		}
	}
	return repositories.ErrStudentNotFound
}

type fakeClassYearRepo struct {
	classYears []models.ClassYear
	err        error
}

func (f *fakeClassYearRepo) Create(ctx context.Context, classYear *models.ClassYear) error {
	if f.err != nil {
		return f.err
	}
	classYear.ID = len(f.classYears) + 1
	f.classYears = append(f.classYears, *classYear)
	return nil
}

func (f *fakeClassYearRepo) GetByID(ctx context.Context, id int) (*models.ClassYear, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.classYears {
		if f.classYears[i].ID == id {
			cy := f.classYears[i]
			return &cy, nil
		}
	}
	return nil, repositories.ErrClassYearNotFound
}

func (f *fakeClassYearRepo) GetAll(ctx context.Context) ([]models.ClassYear, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.classYears, nil
}

func (f *fakeClassYearRepo) Delete(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.classYears {
		if f.classYears[i].ID == id {
			f.classYears = append(f.classYears[:i], f.classYears[i+1:]...)
			return nil
		}
	}
	return repositories.ErrClassYearNotFound
}

type fakeNotifier struct {
	calls [][]standings.Row
}

func (f *fakeNotifier) StandingsChanged(rows []standings.Row) {
	f.calls = append(f.calls, rows)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fourHouses() []models.House {
	return []models.House{
		{ID: 1, Name: "Apollo", Color: "gold"},
		{ID: 2, Name: "Artemis", Color: "silver"},
		{ID: 3, Name: "Athena", Color: "grey"},
		{ID: 4, Name: "Poseidon", Color: "blue"},
	}
}
