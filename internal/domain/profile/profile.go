package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Profile is the one-per-user document. Experience and Education are kept most recent first.
type Profile struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user_id"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	Skills         []string     `json:"skills"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"date"`
}

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// Violation names a required field that is missing or empty.
type Violation struct {
	Field string
	Msg   string
}

func New(userID uuid.UUID, now time.Time) *Profile {
	return &Profile{
		ID:         uuid.New(),
		UserID:     userID,
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
		CreatedAt:  now,
	}
}

// AddExperience inserts at the head of the list and returns the generated id.
func (p *Profile) AddExperience(e Experience) uuid.UUID {
	e.ID = uuid.New()
	p.Experience = append([]Experience{e}, p.Experience...)
	return e.ID
}

// RemoveExperience deletes the entry with the given id. An unknown id leaves the list untouched.
func (p *Profile) RemoveExperience(id uuid.UUID) bool {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Profile) AddEducation(e Education) uuid.UUID {
	e.ID = uuid.New()
	p.Education = append([]Education{e}, p.Education...)
	return e.ID
}

func (p *Profile) RemoveEducation(id uuid.UUID) bool {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}

func (e Experience) Violations() []Violation {
	var v []Violation
	if strings.TrimSpace(e.Title) == "" {
		v = append(v, Violation{"title", "Title is required"})
	}
	if strings.TrimSpace(e.Company) == "" {
		v = append(v, Violation{"company", "Company is required"})
	}
	if e.From.IsZero() {
		v = append(v, Violation{"from", "From date is required"})
	}
	return v
}

func (e Education) Violations() []Violation {
	var v []Violation
	if strings.TrimSpace(e.School) == "" {
		v = append(v, Violation{"school", "School is required"})
	}
	if strings.TrimSpace(e.Degree) == "" {
		v = append(v, Violation{"degree", "Degree is required"})
	}
	if strings.TrimSpace(e.FieldOfStudy) == "" {
		v = append(v, Violation{"fieldofstudy", "Field of study is required"})
	}
	if e.From.IsZero() {
		v = append(v, Violation{"from", "From date is required"})
	}
	return v
}

type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	// Upsert applies the patch to the profile of userID, creating it when absent, in one atomic step.
	Upsert(ctx context.Context, userID uuid.UUID, patch Patch, now time.Time) (*Profile, error)
	// Save replaces an existing profile document.
	Save(ctx context.Context, p *Profile) error
	// DeleteByUserID is idempotent.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
