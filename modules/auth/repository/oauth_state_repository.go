package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Ridhima028/ai-calendar-assistant/core/database"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/modules/auth/entity"
)

type AuthRepositoryInterface interface {
	SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error
	GetOAuthState(ctx context.Context, state string) (*entity.OAuthState, error)
	DeleteOAuthState(ctx context.Context, state string) error
	CleanupExpiredOAuthStates(ctx context.Context) error
}

type AuthRepository struct {
	DB database.IDatabase
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: &db}
}

// SaveOAuthState stores an OAuth state token for the callback round trip.
func (r *AuthRepository) SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error {
	query := `
		INSERT INTO oauth_states (id, state, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (state)
		DO UPDATE SET expires_at = $3, updated_at = NOW()
	`
	err := r.DB.ExecContext(ctx, query, uuid.New(), state, expiresAt)
	if err != nil {
		logger.Error("AuthRepository:SaveOAuthState:Error", "error", err, "state", state)
		return err
	}
	return nil
}

// GetOAuthState retrieves a still-valid OAuth state token. Expired or unknown
// states yield (nil, nil).
func (r *AuthRepository) GetOAuthState(ctx context.Context, state string) (*entity.OAuthState, error) {
	var oauthState entity.OAuthState
	query := `
		SELECT id, state, expires_at, created_at, updated_at
		FROM oauth_states
		WHERE state = $1 AND expires_at > NOW()
	`
	err := r.DB.GetContext(ctx, &oauthState, query, state)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetOAuthState:Error", "error", err, "state", state)
		return nil, err
	}
	return &oauthState, nil
}

func (r *AuthRepository) DeleteOAuthState(ctx context.Context, state string) error {
	query := `DELETE FROM oauth_states WHERE state = $1`
	err := r.DB.ExecContext(ctx, query, state)
	if err != nil {
		logger.Error("AuthRepository:DeleteOAuthState:Error", "error", err, "state", state)
		return err
	}
	return nil
}

func (r *AuthRepository) CleanupExpiredOAuthStates(ctx context.Context) error {
	query := `DELETE FROM oauth_states WHERE expires_at < NOW()`
	err := r.DB.ExecContext(ctx, query)
	if err != nil {
		logger.Error("AuthRepository:CleanupExpiredOAuthStates:Error", "error", err)
		return err
	}
	return nil
}
