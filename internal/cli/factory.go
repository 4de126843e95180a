package cli

import (
	"context"

	"go.uber.org/zap"

	"taskboard/internal/backend/googletasks"
	"taskboard/internal/backend/rest"
	"taskboard/internal/config"
	"taskboard/internal/service"
)

// authError is a credential problem found before any request is made.
type authError struct {
	msg string
}

func (e *authError) Error() string { return e.msg }
func (e *authError) Unwrap() error { return service.ErrUnauthorized }

// DefaultFactory builds the backend selected by cfg.Backend.
func DefaultFactory(ctx context.Context, cfg *config.Config) (service.Service, error) {
	switch cfg.Backend {
	case config.BackendGoogleTasks:
		if !cfg.HasOAuthClient() {
			return nil, &authError{msg: "oauth_client.json not found in " + cfg.Dir}
		}
		if !cfg.HasToken() {
			return nil, &authError{msg: "not logged in (run: taskboard login)"}
		}
		client, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil

	default:
		client, err := rest.New(cfg.URL,
			rest.WithTimeout(cfg.Timeout),
			rest.WithLogger(zap.L()),
		)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
