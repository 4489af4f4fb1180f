package service

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
)

var calendarScopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
}

// AuthServiceInterface handles the Google authorization-code flow and keeps
// session credentials usable.
type AuthServiceInterface interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*session.Credentials, *errors.AppError)
	// AccessToken returns a valid access token, refreshing (and mutating the
	// passed credentials) when the stored one is about to expire.
	AccessToken(ctx context.Context, creds *session.Credentials) (string, *errors.AppError)
}

type AuthService struct {
	oauth *oauth2.Config
}

func NewAuthService(cfg config.GoogleAPIConfig) *AuthService {
	return &AuthService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       calendarScopes,
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *AuthService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (s *AuthService) Exchange(ctx context.Context, code string) (*session.Credentials, *errors.AppError) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:Exchange:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	return &session.Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}, nil
}

func (s *AuthService) AccessToken(ctx context.Context, creds *session.Credentials) (string, *errors.AppError) {
	if creds == nil || creds.AccessToken == "" {
		return "", errors.NewAppError(errors.ErrUnauthorized, "not authenticated", nil)
	}

	// Refresh a little early so in-flight calls don't race the expiry.
	if creds.Expiry.IsZero() || time.Now().Before(creds.Expiry.Add(-5*time.Minute)) {
		return creds.AccessToken, nil
	}

	if creds.RefreshToken == "" {
		logger.Warn("AuthService:AccessToken:NoRefreshToken", "expiry", creds.Expiry)
		return creds.AccessToken, nil
	}

	logger.Info("AuthService:AccessToken:Refreshing")

	source := s.oauth.TokenSource(ctx, &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		Expiry:       creds.Expiry,
	})

	token, err := source.Token()
	if err != nil {
		logger.Error("AuthService:AccessToken:Refresh:Error", "error", err)
		return "", errors.NewAppError(errors.ErrTokenExpired, "failed to refresh Google token", err)
	}

	creds.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		creds.RefreshToken = token.RefreshToken
	}
	creds.Expiry = token.Expiry

	return creds.AccessToken, nil
}
