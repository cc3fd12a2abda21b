package model

import "time"

// Testimonial is a quote shown on the portfolio site.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Company   string    `json:"company"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	Featured  bool      `json:"featured"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}
