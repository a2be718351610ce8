package http

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/profile"
)

// Date accepts either an RFC3339 timestamp or a bare calendar date.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func (d *Date) value() time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// profileRequest keeps every field optional at the binding layer; required fields are
// checked by the profile domain so blank values are treated the same as absent ones.
type profileRequest struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	Status         *string `json:"status"`
	Skills         *string `json:"skills"`
	GithubUsername *string `json:"githubusername"`
	YouTube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	LinkedIn       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

func (r profileRequest) toPatch() profile.Patch {
	return profile.Patch{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Bio:            r.Bio,
		Status:         r.Status,
		Skills:         r.Skills,
		GithubUsername: r.GithubUsername,
		Social: profile.SocialPatch{
			YouTube:   r.YouTube,
			Twitter:   r.Twitter,
			Facebook:  r.Facebook,
			LinkedIn:  r.LinkedIn,
			Instagram: r.Instagram,
		},
	}
}

// Entry requests are checked by the profile domain, which reports the same field messages
// for absent and blank values.
type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        *Date  `json:"from"`
	To          *Date  `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (r experienceRequest) toDomain() profile.Experience {
	return profile.Experience{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        r.From.value(),
		To:          r.To.ptr(),
		Current:     r.Current,
		Description: r.Description,
	}
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         *Date  `json:"from"`
	To           *Date  `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r educationRequest) toDomain() profile.Education {
	return profile.Education{
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		From:         r.From.value(),
		To:           r.To.ptr(),
		Current:      r.Current,
		Description:  r.Description,
	}
}

type textRequest struct {
	Text string `json:"text"`
}
