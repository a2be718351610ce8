package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/JakeG-9191/Denver-Dev-Connect/internal/domain/user"
	"github.com/JakeG-9191/Denver-Dev-Connect/pkg/logger"
)

const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{"id", "name", "email", "password_hash", "avatar_url", "created_at"}

type postgresUserRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresUserRepo(db *pgxpool.Pool, log logger.Logger) user.Repository {
	return &postgresUserRepo{db: db, logger: log}
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return u, nil
}

func (r *postgresUserRepo) Create(ctx context.Context, u *user.User) error {
	query, args, err := psql.Insert("users").
		Columns(userColumns...).
		Values(u.ID.String(), u.Name, u.Email, u.PasswordHash, u.AvatarURL, u.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user query failed: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("insert user failed: %w", err)
	}
	return nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id.String()})
}

func (r *postgresUserRepo) findOne(ctx context.Context, where sq.Eq) (*user.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user query failed: %w", err)
	}
	return scanUser(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresUserRepo) FindSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Summary, error) {
	out := make(map[uuid.UUID]user.Summary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	// squirrel expands array kinds, so ids go in as strings
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	query, args, err := psql.Select("id", "name", "avatar_url").From("users").Where(sq.Eq{"id": keys}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select summaries query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query user summaries failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s user.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan user summary: %w", err)
		}
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user summaries failed: %w", err)
	}
	return out, nil
}

func (r *postgresUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	query, args, err := psql.Update("users").Set("avatar_url", avatarURL).Where(sq.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return fmt.Errorf("build update avatar query failed: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update avatar failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("users").Where(sq.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete user query failed: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug("Delete user: no row", zap.String("user_id", id.String()))
	}
	return nil
}
