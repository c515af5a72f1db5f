package models

// ClassYear представляет учебный год (Freshman..Senior).
// DisplayOrder задаёт порядок группировки и не выводится из GradYear.
type ClassYear struct {
	ID           int    `json:"id"`
	GradYear     int    `json:"grad_year"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}
