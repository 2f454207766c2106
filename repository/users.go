package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	repobun "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
	auth "github.com/zipple/go-auth"
	"github.com/zipple/go-auth/social"
)

// UserModel is the Bun model for local accounts created through federated
// login. Identities are BIGINT keys; the provider binding is unique.
type UserModel struct {
	bun.BaseModel `bun:"table:users"`

	ID             int64     `bun:"id,pk,autoincrement"`
	Provider       string    `bun:"provider,notnull"`
	ProviderUserID string    `bun:"provider_user_id,notnull"`
	Email          string    `bun:"email"`
	Nickname       string    `bun:"nickname"`
	AvatarURL      string    `bun:"avatar_url"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}

// Users implements social.UserDirectory using Bun.
type Users struct {
	db *bun.DB
}

// NewUsers creates a new user directory.
func NewUsers(db *bun.DB) *Users {
	return &Users{db: db}
}

// FindOrCreateByProviderID implements social.UserDirectory. The lookup is
// idempotent on (provider, provider_user_id); repeat logins refresh the
// mutable profile fields and return the existing identity.
func (r *Users) FindOrCreateByProviderID(ctx context.Context, profile *social.Profile) (auth.Identity, error) {
	var model UserModel
	err := r.db.NewSelect().
		Model(&model).
		Where("provider = ? AND provider_user_id = ?", profile.Provider, profile.ProviderUserID).
		Scan(ctx)

	if err == nil {
		model.Email = profile.Email
		model.Nickname = profile.Nickname
		model.AvatarURL = profile.AvatarURL
		model.UpdatedAt = time.Now()

		if _, err := r.db.NewUpdate().
			Model(&model).
			Column("email", "nickname", "avatar_url", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return 0, err
		}

		return auth.Identity(model.ID), nil
	}

	if !repobun.IsRecordNotFound(err) && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	model = UserModel{
		Provider:       profile.Provider,
		ProviderUserID: profile.ProviderUserID,
		Email:          profile.Email,
		Nickname:       profile.Nickname,
		AvatarURL:      profile.AvatarURL,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if _, err := r.db.NewInsert().
		Model(&model).
		On("CONFLICT (provider, provider_user_id) DO UPDATE").
		Set("email = EXCLUDED.email").
		Set("nickname = EXCLUDED.nickname").
		Set("avatar_url = EXCLUDED.avatar_url").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return 0, err
	}

	if model.ID == 0 {
		// lost the insert race; fetch the winning row
		if err := r.db.NewSelect().
			Model(&model).
			Where("provider = ? AND provider_user_id = ?", profile.Provider, profile.ProviderUserID).
			Scan(ctx); err != nil {
			return 0, err
		}
	}

	return auth.Identity(model.ID), nil
}

// DeleteAccount implements social.UserDirectory.
func (r *Users) DeleteAccount(ctx context.Context, identity auth.Identity) error {
	res, err := r.db.NewDelete().
		Model((*UserModel)(nil)).
		Where("id = ?", int64(identity)).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repobun.NewRecordNotFound().WithMetadata(map[string]any{
			"user_id": identity.String(),
		})
	}

	return nil
}

// GetByID fetches a user by identity.
func (r *Users) GetByID(ctx context.Context, identity auth.Identity) (*UserModel, error) {
	var model UserModel
	err := r.db.NewSelect().
		Model(&model).
		Where("id = ?", int64(identity)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repobun.NewRecordNotFound()
		}
		return nil, err
	}
	return &model, nil
}
