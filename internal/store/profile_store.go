package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"treelink-backend/internal/models"
)

// ErrHandleTaken is returned when a write would give two profiles the same
// public handle. The unique index on treelink_profiles.handle makes the
// check-and-write a single atomic statement, so two concurrent claims on the
// same handle cannot both succeed.
var ErrHandleTaken = errors.New("handle already taken")

// ProfileStore is durable keyed storage of LinkProfile documents. Lookups by
// email (unique owner key) or handle (public key). Absence of a profile is
// (nil, nil), not an error.
type ProfileStore interface {
	FindByEmail(ctx context.Context, email string) (*models.LinkProfile, error)
	FindByHandle(ctx context.Context, handle string) (*models.LinkProfile, error)

	// AppendLink atomically appends one item to the profile's link array,
	// creating the profile (with handle/image from the request) when none
	// exists for the email. Returns the row's current handle so callers can
	// invalidate cached public lookups.
	AppendLink(ctx context.Context, email, handle, image string, item models.LinkItem) (string, error)

	// RemoveLinksByURL removes every link whose url equals the given value,
	// preserving the order of the remaining items. A profile or url that
	// does not exist is a no-op success.
	RemoveLinksByURL(ctx context.Context, email, url string) (string, error)

	// SetHandle updates the public handle in a single conditional write.
	// Returns ErrHandleTaken when another profile owns newHandle. No profile
	// for the email is a no-op success.
	SetHandle(ctx context.Context, email, newHandle string) error

	// SetImage upserts the profile image by email and returns the resulting
	// profile.
	SetImage(ctx context.Context, email, image string) (*models.LinkProfile, error)
}

const profileColumns = `id, email, handle, profile_image, links, created_at, updated_at`

const (
	queryFindByEmail = `SELECT ` + profileColumns + ` FROM treelink_profiles WHERE email = $1`

	queryFindByHandle = `SELECT ` + profileColumns + ` FROM treelink_profiles WHERE handle = $1 LIMIT 1`

	queryAppendLink = `
		INSERT INTO treelink_profiles (id, email, handle, profile_image, links)
		VALUES ($1, $2, $3, NULLIF($4, ''), jsonb_build_array($5::jsonb))
		ON CONFLICT (email) DO UPDATE
		SET links = treelink_profiles.links || EXCLUDED.links, updated_at = now()
		RETURNING handle`

	queryRemoveLinks = `
		UPDATE treelink_profiles
		SET links = COALESCE(
			(SELECT jsonb_agg(item ORDER BY ord)
			 FROM jsonb_array_elements(links) WITH ORDINALITY AS t(item, ord)
			 WHERE item->>'url' <> $2),
			'[]'::jsonb),
		    updated_at = now()
		WHERE email = $1
		RETURNING handle`

	querySetHandle = `UPDATE treelink_profiles SET handle = $2, updated_at = now() WHERE email = $1`

	querySetImage = `
		INSERT INTO treelink_profiles (id, email, profile_image)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET profile_image = EXCLUDED.profile_image, updated_at = now()
		RETURNING ` + profileColumns
)

type postgresProfileStore struct {
	db           *sqlx.DB
	queryTimeout time.Duration
}

// NewPostgresProfileStore creates a ProfileStore backed by Postgres. A
// non-zero queryTimeout bounds every round trip.
func NewPostgresProfileStore(db *sqlx.DB, queryTimeout time.Duration) ProfileStore {
	return &postgresProfileStore{db: db, queryTimeout: queryTimeout}
}

func (s *postgresProfileStore) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *postgresProfileStore) FindByEmail(ctx context.Context, email string) (*models.LinkProfile, error) {
	return s.findOne(ctx, queryFindByEmail, email)
}

func (s *postgresProfileStore) FindByHandle(ctx context.Context, handle string) (*models.LinkProfile, error) {
	return s.findOne(ctx, queryFindByHandle, handle)
}

func (s *postgresProfileStore) findOne(ctx context.Context, query, key string) (*models.LinkProfile, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var profile models.LinkProfile
	err := s.db.GetContext(ctx, &profile, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

func (s *postgresProfileStore) AppendLink(ctx context.Context, email, handle, image string, item models.LinkItem) (string, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	itemJSON, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("encode link item: %w", err)
	}

	var owner sql.NullString
	err = s.db.QueryRowContext(ctx, queryAppendLink, uuid.New(), email, handle, image, itemJSON).Scan(&owner)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrHandleTaken
		}
		return "", fmt.Errorf("append link: %w", err)
	}
	return owner.String, nil
}

func (s *postgresProfileStore) RemoveLinksByURL(ctx context.Context, email, url string) (string, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var owner sql.NullString
	err := s.db.QueryRowContext(ctx, queryRemoveLinks, email, url).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		// No profile for the email; deletion is idempotent.
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("remove links: %w", err)
	}
	return owner.String, nil
}

func (s *postgresProfileStore) SetHandle(ctx context.Context, email, newHandle string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, querySetHandle, email, newHandle); err != nil {
		if isUniqueViolation(err) {
			return ErrHandleTaken
		}
		return fmt.Errorf("set handle: %w", err)
	}
	return nil
}

func (s *postgresProfileStore) SetImage(ctx context.Context, email, image string) (*models.LinkProfile, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var profile models.LinkProfile
	err := s.db.QueryRowxContext(ctx, querySetImage, uuid.New(), email, image).StructScan(&profile)
	if err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	return &profile, nil
}

// isUniqueViolation reports whether err is a Postgres unique violation on the
// handle index (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
