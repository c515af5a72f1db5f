package models

// House представляет один из соревнующихся домов.
type House struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`

	CrestKey *string `json:"-"`
	CrestURL *string `json:"crest_url,omitempty"`
}
