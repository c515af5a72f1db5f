package models

type Student struct {
	ID          int     `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       *string `json:"email,omitempty"`
	HouseID     int     `json:"house_id"`
	ClassYearID int     `json:"class_year_id"`

	House     *House     `json:"house,omitempty"`
	ClassYear *ClassYear `json:"class_year,omitempty"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
