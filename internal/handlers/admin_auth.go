package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fra-anto/wedding-rsvp-api/internal/config"
	"github.com/rs/zerolog"
)

// requireAdminKey gates the admin operations behind the shared-secret key
// from the environment. Deliberately a plaintext comparison: hardening the
// admin auth is out of scope for this site.
func requireAdminKey(cfg *config.Config, key string) error {
	if cfg.AdminKey == "" || key != cfg.AdminKey {
		return huma.Error401Unauthorized("Non autorizzato")
	}
	return nil
}

type AdminAuthHandler struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewAdminAuthHandler(cfg *config.Config, log zerolog.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{cfg: cfg, log: log.With().Str("component", "admin-auth").Logger()}
}

type AdminAuthInput struct {
	Body struct {
		Password string `json:"password" doc:"Admin key to validate"`
	}
}

type AdminAuthOutput struct {
	Body struct {
		Success bool `json:"success"`
	}
}

func (h *AdminAuthHandler) HandleAuth(ctx context.Context, input *AdminAuthInput) (*AdminAuthOutput, error) {
	if input.Body.Password == "" {
		return nil, huma.Error400BadRequest("Password richiesta")
	}

	if h.cfg.AdminKey == "" {
		h.log.Error().Msg("ADMIN_KEY not set in environment")
		return nil, huma.Error500InternalServerError("Configurazione server errata")
	}

	if input.Body.Password != h.cfg.AdminKey {
		return nil, huma.Error401Unauthorized("Chiave admin non valida")
	}

	res := &AdminAuthOutput{}
	res.Body.Success = true
	return res, nil
}
