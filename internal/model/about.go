package model

import "time"

// Experience is one work history entry on the about page.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is one education entry on the about page.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// About is the single about-page document.
type About struct {
	ID                string       `json:"id"`
	About             string       `json:"about"`
	Location          string       `json:"location"`
	YearsOfExperience int          `json:"yearsOfExperience"`
	Interests         []string     `json:"interests"`
	Experience        []Experience `json:"experience"`
	Education         []Education  `json:"education"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}
