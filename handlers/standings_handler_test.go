package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/housecup/house-points-system/services"
	"github.com/housecup/house-points-system/standings"
)

type fakeStandingsService struct {
	rows []standings.Row
	err  error

	gotTopN *int
}

func (f *fakeStandingsService) ListStandings(ctx context.Context) ([]standings.Row, error) {
	return f.rows, f.err
}

func (f *fakeStandingsService) GetLeader(ctx context.Context) (*standings.Row, error) {
	if f.err != nil {
		return nil, f.err
	}
	return standings.Leader(f.rows), nil
}

func (f *fakeStandingsService) BreakdownByCategory(ctx context.Context) ([]standings.CategoryLine, error) {
	return nil, f.err
}

func (f *fakeStandingsService) ListStudentsByStanding(ctx context.Context, topN *int) ([]services.StudentStandingRow, error) {
	f.gotTopN = topN
	return []services.StudentStandingRow{}, f.err
}

func (f *fakeStandingsService) GetHouseSummary(ctx context.Context, houseID int) (*services.HouseSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return nil, services.ErrHouseNotFound
}

func newStandingsRouter(svc services.StandingsService) *chi.Mux {
	h := NewStandingsHandler(svc)
	router := chi.NewRouter()
	router.Get("/standings", h.ListStandings)
	router.Get("/standings/leader", h.GetLeader)
	router.Get("/standings/students", h.ListStudentsByStanding)
	router.Get("/houses/{houseID}/summary", h.GetHouseSummary)
	return router
}

func TestListStandingsEndpoint(t *testing.T) {
	svc := &fakeStandingsService{rows: []standings.Row{
		{Position: 1, HouseID: 3, HouseName: "Athena", TotalPoints: 400},
		{Position: 2, HouseID: 2, HouseName: "Artemis", TotalPoints: 300},
	}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/standings", nil)

	newStandingsRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Standings []standings.Row `json:"standings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Standings) != 2 || body.Standings[0].HouseName != "Athena" {
		t.Errorf("unexpected body: %+v", body.Standings)
	}
}

func TestListStudentsByStandingTopParam(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantTopN   *int
	}{
		{name: "no top", url: "/standings/students", wantStatus: http.StatusOK},
		{name: "valid top", url: "/standings/students?top=2", wantStatus: http.StatusOK, wantTopN: intPtr(2)},
		{name: "zero top", url: "/standings/students?top=0", wantStatus: http.StatusBadRequest},
		{name: "garbage top", url: "/standings/students?top=abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeStandingsService{}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)

			newStandingsRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			switch {
			case tt.wantTopN == nil && svc.gotTopN != nil:
				t.Errorf("expected no topN, got %d", *svc.gotTopN)
			case tt.wantTopN != nil && (svc.gotTopN == nil || *svc.gotTopN != *tt.wantTopN):
				t.Errorf("expected topN %d, got %v", *tt.wantTopN, svc.gotTopN)
			}
		})
	}
}

func TestGetHouseSummaryBadID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/houses/nope/summary", nil)

	newStandingsRouter(&fakeStandingsService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetHouseSummaryNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/houses/42/summary", nil)

	newStandingsRouter(&fakeStandingsService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func intPtr(n int) *int { return &n }
