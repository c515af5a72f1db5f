package standings

import (
	"math"
	"sort"

	"github.com/housecup/house-points-system/models"
)

// Row is one house's aggregated leaderboard entry.
type Row struct {
	Position           int         `json:"position"`
	HouseID            int         `json:"house_id"`
	HouseName          string      `json:"house_name"`
	Color              string      `json:"color"`
	TotalPoints        int         `json:"total_points"`
	EventsParticipated int         `json:"events_participated"`
	Placements         map[int]int `json:"placements"`
	Wins               int         `json:"wins"`
	Second             int         `json:"second"`
	Third              int         `json:"third"`
	Fourth             int         `json:"fourth"`

	// PointsAhead is the margin over the next-lower-ranked house.
	// nil for the last row.
	PointsAhead *int `json:"points_ahead,omitempty"`
}

// Compute folds the full result log into an ordered leaderboard.
// Every house gets a row, houses without results score zero.
// Ordering: total points descending, then house name ascending.
// The upstream data model never defined a secondary key; name
// ascending is the documented tie-break here so that equal totals
// always come back in the same order.
func Compute(houses []models.House, results []models.EventResult) []Row {
	byHouse := make(map[int]*Row, len(houses))
	rows := make([]Row, 0, len(houses))

	for _, h := range houses {
		rows = append(rows, Row{
			HouseID:    h.ID,
			HouseName:  h.Name,
			Color:      h.Color,
			Placements: make(map[int]int),
		})
	}
	for i := range rows {
		byHouse[rows[i].HouseID] = &rows[i]
	}

	for _, res := range results {
		row, ok := byHouse[res.HouseID]
		if !ok {
			// Result for an unknown house: internally inconsistent
			// snapshots are ignored rather than failed on.
			continue
		}
		row.TotalPoints += res.PointsEarned
		// (event_id, house_id) is the result identity, so each row
		// is a distinct event for its house.
		row.EventsParticipated++
		row.Placements[res.Rank]++
	}

	for i := range rows {
		rows[i].Wins = rows[i].Placements[1]
		rows[i].Second = rows[i].Placements[2]
		rows[i].Third = rows[i].Placements[3]
		rows[i].Fourth = rows[i].Placements[4]
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].HouseName < rows[j].HouseName
	})

	for i := range rows {
		rows[i].Position = i + 1
		if i+1 < len(rows) {
			ahead := rows[i].TotalPoints - rows[i+1].TotalPoints
			rows[i].PointsAhead = &ahead
		}
	}

	return rows
}

// Leader returns the first row of an already computed leaderboard,
// or nil when there are no houses at all. A zero-point leaderboard
// still has a leader (tie-break order).
func Leader(rows []Row) *Row {
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// AverageRanks returns each house's mean placement, rounded to two
// decimal places. Houses with no results are omitted.
func AverageRanks(results []models.EventResult) map[int]float64 {
	sums := make(map[int]int)
	counts := make(map[int]int)
	for _, res := range results {
		sums[res.HouseID] += res.Rank
		counts[res.HouseID]++
	}

	avgs := make(map[int]float64, len(sums))
	for houseID, sum := range sums {
		avgs[houseID] = round2(float64(sum) / float64(counts[houseID]))
	}
	return avgs
}

// PointsPerStudent is the efficiency metric: total points divided by
// the house's distinct student count, two decimal places, 0 for an
// empty roster.
func PointsPerStudent(totalPoints, studentCount int) float64 {
	if studentCount <= 0 {
		return 0
	}
	return round2(float64(totalPoints) / float64(studentCount))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
