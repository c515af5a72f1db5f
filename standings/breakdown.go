package standings

import (
	"sort"

	"github.com/housecup/house-points-system/models"
)

// CategoryLine is one (house, category) slice of the result log.
type CategoryLine struct {
	HouseID       int     `json:"house_id"`
	HouseName     string  `json:"house_name"`
	Category      string  `json:"category"`
	Points        int     `json:"points"`
	EventCount    int     `json:"event_count"`
	AveragePoints float64 `json:"average_points"`
}

// Breakdown groups results by (house, category). Pairs with no
// events in a category produce no line at all, so the average is
// never a division by zero. Lines come back ordered by category
// ascending, then points descending, then house name.
func Breakdown(houses []models.House, events []models.Event, results []models.EventResult) []CategoryLine {
	categoryByEvent := make(map[int]string, len(events))
	for _, e := range events {
		categoryByEvent[e.ID] = e.Category
	}
	nameByHouse := make(map[int]string, len(houses))
	for _, h := range houses {
		nameByHouse[h.ID] = h.Name
	}

	type key struct {
		houseID  int
		category string
	}
	acc := make(map[key]*CategoryLine)

	for _, res := range results {
		category, ok := categoryByEvent[res.EventID]
		if !ok {
			continue
		}
		name, ok := nameByHouse[res.HouseID]
		if !ok {
			continue
		}
		k := key{houseID: res.HouseID, category: category}
		line, ok := acc[k]
		if !ok {
			line = &CategoryLine{
				HouseID:   res.HouseID,
				HouseName: name,
				Category:  category,
			}
			acc[k] = line
		}
		line.Points += res.PointsEarned
		line.EventCount++
	}

	lines := make([]CategoryLine, 0, len(acc))
	for _, line := range acc {
		line.AveragePoints = round2(float64(line.Points) / float64(line.EventCount))
		lines = append(lines, *line)
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Category != lines[j].Category {
			return lines[i].Category < lines[j].Category
		}
		if lines[i].Points != lines[j].Points {
			return lines[i].Points > lines[j].Points
		}
		return lines[i].HouseName < lines[j].HouseName
	})

	return lines
}
