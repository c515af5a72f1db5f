package services

import (
	"context"
	"errors"
	"testing"

	"github.com/housecup/house-points-system/models"
)

func rosterStudentRepo() *fakeStudentRepo {
	year := &models.ClassYear{ID: 1, GradYear: 2027, Name: "Fifth Year"}
	return &fakeStudentRepo{students: []models.Student{
		{ID: 1, FirstName: "Ada", LastName: "Byron", HouseID: 3, ClassYearID: 1, ClassYear: year},
		{ID: 2, FirstName: "Grace", LastName: "Hopper", HouseID: 3, ClassYearID: 1, ClassYear: year},
		{ID: 3, FirstName: "Alan", LastName: "Turing", HouseID: 1, ClassYearID: 1, ClassYear: year},
	}}
}

func TestListStandingsEndToEnd(t *testing.T) {
	houseRepo := &fakeHouseRepo{houses: fourHouses()}
	eventRepo := &fakeEventRepo{
		events: []models.Event{{ID: 1, Description: "Quidditch final"}},
		results: []models.EventResult{
			{EventID: 1, HouseID: 1, PointsEarned: 100, Rank: 4},
			{EventID: 1, HouseID: 2, PointsEarned: 300, Rank: 2},
			{EventID: 1, HouseID: 3, PointsEarned: 400, Rank: 1},
			{EventID: 1, HouseID: 4, PointsEarned: 200, Rank: 3},
		},
	}
	svc := NewStandingsService(houseRepo, eventRepo, rosterStudentRepo())

	rows, err := svc.ListStandings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	wantOrder := []string{"Athena", "Artemis", "Poseidon", "Apollo"}
	wantPoints := []int{400, 300, 200, 100}
	for i, row := range rows {
		if row.HouseName != wantOrder[i] {
			t.Errorf("position %d: expected %s, got %s", i+1, wantOrder[i], row.HouseName)
		}
		if row.TotalPoints != wantPoints[i] {
			t.Errorf("position %d: expected %d points, got %d", i+1, wantPoints[i], row.TotalPoints)
		}
		if row.Position != i+1 {
			t.Errorf("expected position %d, got %d", i+1, row.Position)
		}
	}
	for i := 0; i < 3; i++ {
		if rows[i].PointsAhead == nil || *rows[i].PointsAhead != 100 {
			t.Errorf("position %d: expected 100 points ahead", i+1)
		}
	}
	if rows[3].PointsAhead != nil {
		t.Error("last place must have no points-ahead value")
	}
}

func TestGetLeaderEmptyLog(t *testing.T) {
	svc := NewStandingsService(&fakeHouseRepo{houses: fourHouses()}, &fakeEventRepo{}, rosterStudentRepo())

	leader, err := svc.GetLeader(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Пустой журнал - лидер определяется детерминированным порядком.
	if leader == nil {
		t.Fatal("expected a leader with houses present")
	}
	if leader.HouseName != "Apollo" || leader.TotalPoints != 0 {
		t.Errorf("expected Apollo with 0 points, got %s with %d", leader.HouseName, leader.TotalPoints)
	}
}

func TestGetLeaderNoHouses(t *testing.T) {
	svc := NewStandingsService(&fakeHouseRepo{}, &fakeEventRepo{}, &fakeStudentRepo{})

	leader, err := svc.GetLeader(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leader != nil {
		t.Errorf("expected nil leader without houses, got %+v", leader)
	}
}

func TestListStudentsByStanding(t *testing.T) {
	houseRepo := &fakeHouseRepo{houses: fourHouses()}
	eventRepo := &fakeEventRepo{results: []models.EventResult{
		{EventID: 1, HouseID: 3, PointsEarned: 400, Rank: 1},
		{EventID: 1, HouseID: 1, PointsEarned: 100, Rank: 2},
	}}
	svc := NewStandingsService(houseRepo, eventRepo, rosterStudentRepo())

	rows, err := svc.ListStudentsByStanding(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 students, got %d", len(rows))
	}
	// Athena (1-е место) впереди, её студенты в порядке репозитория.
	if rows[0].StudentName != "Ada Byron" || rows[0].HouseStanding != 1 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].StudentName != "Grace Hopper" {
		t.Errorf("expected Grace Hopper second, got %s", rows[1].StudentName)
	}
	if rows[2].StudentName != "Alan Turing" || rows[2].HouseStanding != 2 {
		t.Errorf("unexpected last row: %+v", rows[2])
	}

	topN := 1
	topRows, err := svc.ListStudentsByStanding(context.Background(), &topN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topRows) != 2 {
		t.Fatalf("expected only leading house students, got %d", len(topRows))
	}
	for _, row := range topRows {
		if row.HouseName != "Athena" {
			t.Errorf("expected Athena students only, got %s", row.HouseName)
		}
	}
}

func TestGetHouseSummary(t *testing.T) {
	houseRepo := &fakeHouseRepo{houses: fourHouses()}
	eventRepo := &fakeEventRepo{results: []models.EventResult{
		{EventID: 1, HouseID: 3, PointsEarned: 400, Rank: 1},
		{EventID: 2, HouseID: 3, PointsEarned: 100, Rank: 2},
		{EventID: 2, HouseID: 1, PointsEarned: 300, Rank: 1},
	}}
	svc := NewStandingsService(houseRepo, eventRepo, rosterStudentRepo())

	summary, err := svc.GetHouseSummary(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Row.TotalPoints != 500 {
		t.Errorf("expected 500 total points, got %d", summary.Row.TotalPoints)
	}
	if summary.Row.EventsParticipated != 2 {
		t.Errorf("expected 2 events participated, got %d", summary.Row.EventsParticipated)
	}
	if summary.StudentCount != 2 {
		t.Errorf("expected 2 students, got %d", summary.StudentCount)
	}
	if summary.PointsPerStudent != 250 {
		t.Errorf("expected 250 points per student, got %v", summary.PointsPerStudent)
	}
	if summary.AverageRank == nil || *summary.AverageRank != 1.5 {
		t.Errorf("expected average rank 1.5, got %v", summary.AverageRank)
	}
}

func TestGetHouseSummaryNotFound(t *testing.T) {
	svc := NewStandingsService(&fakeHouseRepo{houses: fourHouses()}, &fakeEventRepo{}, rosterStudentRepo())

	_, err := svc.GetHouseSummary(context.Background(), 99)
	if !errors.Is(err, ErrHouseNotFound) {
		t.Fatalf("expected ErrHouseNotFound, got %v", err)
	}
}

func TestBreakdownByCategory(t *testing.T) {
	houseRepo := &fakeHouseRepo{houses: fourHouses()}
	eventRepo := &fakeEventRepo{
		events: []models.Event{
			{ID: 1, Category: "sports"},
			{ID: 2, Category: "academics"},
		},
		results: []models.EventResult{
			{EventID: 1, HouseID: 3, PointsEarned: 400, Rank: 1},
			{EventID: 2, HouseID: 3, PointsEarned: 50, Rank: 2},
			{EventID: 2, HouseID: 1, PointsEarned: 200, Rank: 1},
		},
	}
	svc := NewStandingsService(houseRepo, eventRepo, rosterStudentRepo())

	lines, err := svc.BreakdownByCategory(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 category lines, got %d", len(lines))
	}
	// Категории по алфавиту, внутри категории очки по убыванию.
	if lines[0].Category != "academics" || lines[0].HouseName != "Apollo" || lines[0].Points != 200 {
		t.Errorf("unexpected first line: %+v", lines[0])
	}
	if lines[1].Category != "academics" || lines[1].HouseName != "Athena" || lines[1].Points != 50 {
		t.Errorf("unexpected second line: %+v", lines[1])
	}
	if lines[2].Category != "sports" || lines[2].HouseName != "Athena" || lines[2].Points != 400 {
		t.Errorf("unexpected third line: %+v", lines[2])
	}
}
