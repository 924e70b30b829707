package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/unidesk/campus/internal/campus/domain"
	"github.com/unidesk/campus/internal/campus/store"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) CreateProfile(ctx context.Context, uid string) (bool, error) {
	// Conditional create: the conflict clause decides existence atomically,
	// so concurrent first-time saves for the same uid agree on who created
	// the row.
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles (uid, role, attrs) VALUES (?, ?, '{}')
		 ON CONFLICT (uid) DO NOTHING`,
		uid, domain.DefaultRole)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) GetProfile(ctx context.Context, uid string) (domain.UserProfile, error) {
	var p domain.UserProfile
	var attrs string
	var created, updated sql.NullTime

	err := r.db.QueryRowContext(ctx,
		`SELECT uid, role, attrs, created_at, updated_at
		 FROM user_profiles WHERE uid = ?`,
		uid).Scan(&p.UID, &p.Role, &attrs, &created, &updated)
	if err != nil {
		return domain.UserProfile{}, mapNotFound(err)
	}

	if err := json.Unmarshal([]byte(attrs), &p.Attrs); err != nil {
		return domain.UserProfile{}, fmt.Errorf("decode profile attrs for %s: %w", uid, err)
	}
	p.CreatedAt = created.Time
	p.UpdatedAt = updated.Time
	return p, nil
}

func (r *usersRepo) UpdateProfile(ctx context.Context, uid string, fields map[string]any) error {
	var role sql.NullString
	attrs := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "role" {
			if s, ok := v.(string); ok {
				role = sql.NullString{String: s, Valid: true}
			}
			continue
		}
		attrs[k] = v
	}

	patch, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encode profile patch: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles
		 SET role = COALESCE(?, role),
		     attrs = json_patch(attrs, ?),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE uid = ?`,
		role, string(patch), uid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) DeleteProfile(ctx context.Context, uid string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_profiles WHERE uid = ?`, uid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
