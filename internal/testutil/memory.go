// Package testutil holds in-memory stand-ins for the storage and messaging ports,
// shared by use case and handler tests.
package testutil

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JakeG-9191/Denver-Dev-Connect/adapters/event"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/application/service"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/post"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/profile"
	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
)

type UserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
	// Err, when set, is returned by every call.
	Err error
}

func NewUserRepo(seed ...*user.User) *UserRepo {
	r := &UserRepo{users: map[uuid.UUID]user.User{}}
	for _, u := range seed {
		r.users[u.ID] = *u
	}
	return r
}

func (r *UserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailTaken
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepo) FindSummaries(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make(map[uuid.UUID]user.Summary, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

func (r *UserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.AvatarURL = avatarURL
	r.users[id] = u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepo) Exists(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok
}

type ProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]profile.Profile
	Err      error
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: map[uuid.UUID]profile.Profile{}}
}

// clone copies the slices so callers cannot mutate stored state.
func cloneProfile(p profile.Profile) *profile.Profile {
	p.Skills = append([]string{}, p.Skills...)
	p.Experience = append([]profile.Experience{}, p.Experience...)
	p.Education = append([]profile.Education{}, p.Education...)
	return &p
}

func (r *ProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *ProfileRepo) List(_ context.Context) ([]*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ProfileRepo) Upsert(_ context.Context, userID uuid.UUID, patch profile.Patch, now time.Time) (*profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.profiles[userID]
	if !ok {
		p = *profile.New(userID, now)
	}
	p.Apply(patch)
	r.profiles[userID] = *cloneProfile(p)
	return cloneProfile(p), nil
}

func (r *ProfileRepo) Save(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.profiles[p.UserID]; !ok {
		return profile.ErrProfileNotFound
	}
	r.profiles[p.UserID] = *cloneProfile(*p)
	return nil
}

func (r *ProfileRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	delete(r.profiles, userID)
	return nil
}

type PostRepo struct {
	mu    sync.Mutex
	posts map[uuid.UUID]post.Post
	Err   error
}

func NewPostRepo() *PostRepo {
	return &PostRepo{posts: map[uuid.UUID]post.Post{}}
}

func clonePost(p post.Post) *post.Post {
	p.Likes = append([]post.Like{}, p.Likes...)
	p.Comments = append([]post.Comment{}, p.Comments...)
	return &p
}

func (r *PostRepo) Save(_ context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.posts[p.ID] = *clonePost(*p)
	return nil
}

func (r *PostRepo) FindByID(_ context.Context, id uuid.UUID) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *PostRepo) List(ctx context.Context) ([]*post.Post, error) {
	return r.ListRecent(ctx, 0)
}

func (r *PostRepo) ListRecent(_ context.Context, limit int) ([]*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PostRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *PostRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for id, p := range r.posts {
		if p.UserID == userID {
			delete(r.posts, id)
		}
	}
	return nil
}

func (r *PostRepo) mutate(id uuid.UUID, fn func(p *post.Post)) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	stored, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	p := clonePost(stored)
	fn(p)
	r.posts[id] = *clonePost(*p)
	return p, nil
}

func (r *PostRepo) PushLike(_ context.Context, postID uuid.UUID, l post.Like) (*post.Post, error) {
	return r.mutate(postID, func(p *post.Post) {
		p.Likes = append([]post.Like{l}, p.Likes...)
	})
}

func (r *PostRepo) PullLike(_ context.Context, postID, userID uuid.UUID) (*post.Post, error) {
	return r.mutate(postID, func(p *post.Post) {
		_ = p.Unlike(userID)
	})
}

func (r *PostRepo) PushComment(_ context.Context, postID uuid.UUID, c post.Comment) (*post.Post, error) {
	return r.mutate(postID, func(p *post.Post) {
		p.Comments = append([]post.Comment{c}, p.Comments...)
	})
}

func (r *PostRepo) PullComment(_ context.Context, postID, commentID uuid.UUID) (*post.Post, error) {
	return r.mutate(postID, func(p *post.Post) {
		for i, c := range p.Comments {
			if c.ID == commentID {
				p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
				return
			}
		}
	})
}

func (r *PostRepo) CountByUser(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.posts {
		if p.UserID == userID {
			n++
		}
	}
	return n
}

// Events records everything published to it.
type Events struct {
	mu      sync.Mutex
	Posts   []event.PostEventPayload
	Account []event.AccountEventPayload
	Err     error
}

func (e *Events) PublishPostEvent(_ context.Context, p event.PostEventPayload) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Posts = append(e.Posts, p)
	return e.Err
}

func (e *Events) PublishAccountEvent(_ context.Context, p event.AccountEventPayload) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Account = append(e.Account, p)
	return e.Err
}

func (e *Events) AccountEvents() []event.AccountEventPayload {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]event.AccountEventPayload(nil), e.Account...)
}

func (e *Events) PostEvents() []event.PostEventPayload {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]event.PostEventPayload(nil), e.Posts...)
}

// Tx runs the callback directly, counting invocations.
type Tx struct {
	Calls int
}

func (t *Tx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

type Uploader struct {
	mu       sync.Mutex
	Uploaded map[string][]byte
	Deleted  []string
	Err      error
}

func NewUploader() *Uploader {
	return &Uploader{Uploaded: map[string][]byte{}}
}

func (u *Uploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if u.Err != nil {
		return "", u.Err
	}
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Uploaded[folder+"/"+publicID] = b
	return "https://media.test/" + folder + "/" + publicID, nil
}

func (u *Uploader) Delete(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Deleted = append(u.Deleted, publicID)
	return u.Err
}

// DeletedIDs is safe to poll while a Delete runs on another goroutine.
func (u *Uploader) DeletedIDs() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.Deleted...)
}

// RepoLookup answers from a fixed table of usernames.
type RepoLookup struct {
	Repos map[string]json.RawMessage
	Err   error
}

func (l *RepoLookup) FetchRepos(_ context.Context, username string) (json.RawMessage, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	body, ok := l.Repos[username]
	if !ok {
		return nil, service.ErrRepoOwnerNotFound
	}
	return body, nil
}
