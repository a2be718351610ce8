package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/profile"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

type socialDoc struct {
	YouTube   string `bson:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
}

type experienceDoc struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Company     string     `bson:"company"`
	Location    string     `bson:"location,omitempty"`
	From        time.Time  `bson:"from"`
	To          *time.Time `bson:"to,omitempty"`
	Current     bool       `bson:"current"`
	Description string     `bson:"description,omitempty"`
}

type educationDoc struct {
	ID           string     `bson:"_id"`
	School       string     `bson:"school"`
	Degree       string     `bson:"degree"`
	FieldOfStudy string     `bson:"fieldofstudy"`
	From         time.Time  `bson:"from"`
	To           *time.Time `bson:"to,omitempty"`
	Current      bool       `bson:"current"`
	Description  string     `bson:"description,omitempty"`
}

type profileDoc struct {
	ID             string          `bson:"_id"`
	UserID         string          `bson:"user_id"`
	Company        string          `bson:"company,omitempty"`
	Website        string          `bson:"website,omitempty"`
	Location       string          `bson:"location,omitempty"`
	Bio            string          `bson:"bio,omitempty"`
	Status         string          `bson:"status"`
	Skills         []string        `bson:"skills"`
	GithubUsername string          `bson:"githubusername,omitempty"`
	Social         socialDoc       `bson:"social"`
	Experience     []experienceDoc `bson:"experience"`
	Education      []educationDoc  `bson:"education"`
	CreatedAt      time.Time       `bson:"date"`
}

func toProfileDoc(p *profile.Profile) profileDoc {
	d := profileDoc{
		ID:             p.ID.String(),
		UserID:         p.UserID.String(),
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		Skills:         p.Skills,
		GithubUsername: p.GithubUsername,
		Social:         socialDoc(p.Social),
		Experience:     make([]experienceDoc, len(p.Experience)),
		Education:      make([]educationDoc, len(p.Education)),
		CreatedAt:      p.CreatedAt,
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	for i, e := range p.Experience {
		d.Experience[i] = experienceDoc{
			ID: e.ID.String(), Title: e.Title, Company: e.Company, Location: e.Location,
			From: e.From, To: e.To, Current: e.Current, Description: e.Description,
		}
	}
	for i, e := range p.Education {
		d.Education[i] = educationDoc{
			ID: e.ID.String(), School: e.School, Degree: e.Degree, FieldOfStudy: e.FieldOfStudy,
			From: e.From, To: e.To, Current: e.Current, Description: e.Description,
		}
	}
	return d
}

func (d profileDoc) toDomain() (*profile.Profile, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid profile id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid profile user_id %q: %w", d.UserID, err)
	}

	p := &profile.Profile{
		ID:             id,
		UserID:         userID,
		Company:        d.Company,
		Website:        d.Website,
		Location:       d.Location,
		Bio:            d.Bio,
		Status:         d.Status,
		Skills:         append([]string{}, d.Skills...),
		GithubUsername: d.GithubUsername,
		Social:         profile.Social(d.Social),
		Experience:     make([]profile.Experience, 0, len(d.Experience)),
		Education:      make([]profile.Education, 0, len(d.Education)),
		CreatedAt:      d.CreatedAt,
	}
	for _, e := range d.Experience {
		eid, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid experience id %q: %w", e.ID, err)
		}
		p.Experience = append(p.Experience, profile.Experience{
			ID: eid, Title: e.Title, Company: e.Company, Location: e.Location,
			From: e.From, To: e.To, Current: e.Current, Description: e.Description,
		})
	}
	for _, e := range d.Education {
		eid, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid education id %q: %w", e.ID, err)
		}
		p.Education = append(p.Education, profile.Education{
			ID: eid, School: e.School, Degree: e.Degree, FieldOfStudy: e.FieldOfStudy,
			From: e.From, To: e.To, Current: e.Current, Description: e.Description,
		})
	}
	return p, nil
}

type mongoProfileRepo struct {
	col    *mongo.Collection
	logger logger.Logger
}

func NewMongoProfileRepo(db *mongo.Database, log logger.Logger) profile.Repository {
	return &mongoProfileRepo{col: db.Collection(profilesCollection), logger: log}
}

func (r *mongoProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	var d profileDoc
	err := r.col.FindOne(ctx, bson.M{"user_id": userID.String()}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile failed: %w", err)
	}
	return d.toDomain()
}

func (r *mongoProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list profiles failed: %w", err)
	}
	var docs []profileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profiles failed: %w", err)
	}

	out := make([]*profile.Profile, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Upsert merges the patch in a single findOneAndUpdate. Fields that only matter on creation
// go through $setOnInsert so an existing document keeps its id, date and entry lists.
func (r *mongoProfileRepo) Upsert(ctx context.Context, userID uuid.UUID, patch profile.Patch, now time.Time) (*profile.Profile, error) {
	set := bson.M{}
	for _, c := range patch.Changes() {
		set[c.Key] = c.Value
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        uuid.New().String(),
			"user_id":    userID.String(),
			"date":       now,
			"experience": bson.A{},
			"education":  bson.A{},
		},
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var d profileDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"user_id": userID.String()}, update, opts).Decode(&d)
	if mongo.IsDuplicateKeyError(err) {
		// two first upserts raced on the unique index; the loser now finds the winner's document
		err = r.col.FindOneAndUpdate(ctx, bson.M{"user_id": userID.String()}, update, opts).Decode(&d)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert profile failed: %w", err)
	}
	return d.toDomain()
}

func (r *mongoProfileRepo) Save(ctx context.Context, p *profile.Profile) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"user_id": p.UserID.String()}, toProfileDoc(p))
	if err != nil {
		return fmt.Errorf("replace profile failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func (r *mongoProfileRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID.String()}); err != nil {
		return fmt.Errorf("delete profile failed: %w", err)
	}
	return nil
}
