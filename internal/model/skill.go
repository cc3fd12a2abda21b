package model

import "time"

// Skill categories accepted by validation and the schema check constraint.
var SkillCategories = []string{"Frontend", "Backend", "Database", "DevOps", "Other"}

// Skill is a single named skill with a 0-100 proficiency.
type Skill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Proficiency int       `json:"proficiency"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}
