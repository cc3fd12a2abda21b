package model

import "time"

// SocialLinks groups the profile's social URLs.
type SocialLinks struct {
	Github    string `json:"github"`
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
}

// Profile is the site owner's single profile document. AvatarURL and
// ResumeURL are populated from upload results; only the URL is persisted,
// never the binary content.
type Profile struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Title     string      `json:"title"`
	Bio       string      `json:"bio"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	ResumeURL string      `json:"resumeUrl"`
	AvatarURL string      `json:"avatarUrl"`
	Social    SocialLinks `json:"social"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
