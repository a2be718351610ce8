package profile

import (
	"strings"
)

// Document keys shared by the patch, the in-memory merge and the Mongo update.
const (
	KeyCompany        = "company"
	KeyWebsite        = "website"
	KeyLocation       = "location"
	KeyBio            = "bio"
	KeyStatus         = "status"
	KeySkills         = "skills"
	KeyGithubUsername = "githubusername"
	KeySocialYouTube  = "social.youtube"
	KeySocialTwitter  = "social.twitter"
	KeySocialFacebook = "social.facebook"
	KeySocialLinkedIn = "social.linkedin"
	KeySocialInsta    = "social.instagram"
)

type SocialPatch struct {
	YouTube   *string
	Twitter   *string
	Facebook  *string
	LinkedIn  *string
	Instagram *string
}

// Patch is a partial set of profile attributes. Nil or blank values leave stored values untouched.
type Patch struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	Skills         *string
	GithubUsername *string
	Social         SocialPatch
}

// Change is one field assignment derived from a Patch.
type Change struct {
	Key   string
	Value any
}

// Violations reports the required fields (status, skills) that are missing.
func (p Patch) Violations() []Violation {
	var v []Violation
	if blank(p.Status) {
		v = append(v, Violation{KeyStatus, "Status is required"})
	}
	if blank(p.Skills) || len(ParseSkills(*p.Skills)) == 0 {
		v = append(v, Violation{KeySkills, "Skills is required"})
	}
	return v
}

// Changes lists the assignments the patch makes, in a stable order.
func (p Patch) Changes() []Change {
	var out []Change
	add := func(key string, v *string) {
		if !blank(v) {
			out = append(out, Change{Key: key, Value: strings.TrimSpace(*v)})
		}
	}

	add(KeyCompany, p.Company)
	add(KeyWebsite, p.Website)
	add(KeyLocation, p.Location)
	add(KeyBio, p.Bio)
	add(KeyStatus, p.Status)
	add(KeyGithubUsername, p.GithubUsername)
	if !blank(p.Skills) {
		if skills := ParseSkills(*p.Skills); len(skills) > 0 {
			out = append(out, Change{Key: KeySkills, Value: skills})
		}
	}

	add(KeySocialYouTube, p.Social.YouTube)
	add(KeySocialTwitter, p.Social.Twitter)
	add(KeySocialFacebook, p.Social.Facebook)
	add(KeySocialLinkedIn, p.Social.LinkedIn)
	add(KeySocialInsta, p.Social.Instagram)
	return out
}

// Apply merges the patch into the profile in place.
func (pr *Profile) Apply(p Patch) {
	for _, c := range p.Changes() {
		if skills, ok := c.Value.([]string); ok {
			pr.Skills = skills
			continue
		}
		s := c.Value.(string)
		switch c.Key {
		case KeyCompany:
			pr.Company = s
		case KeyWebsite:
			pr.Website = s
		case KeyLocation:
			pr.Location = s
		case KeyBio:
			pr.Bio = s
		case KeyStatus:
			pr.Status = s
		case KeyGithubUsername:
			pr.GithubUsername = s
		case KeySocialYouTube:
			pr.Social.YouTube = s
		case KeySocialTwitter:
			pr.Social.Twitter = s
		case KeySocialFacebook:
			pr.Social.Facebook = s
		case KeySocialLinkedIn:
			pr.Social.LinkedIn = s
		case KeySocialInsta:
			pr.Social.Instagram = s
		}
	}
}

// ParseSkills splits a comma separated list, trimming each element and dropping empty ones.
func ParseSkills(csv string) []string {
	parts := strings.Split(csv, ",")
	skills := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
