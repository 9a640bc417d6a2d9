package handlers

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fra-anto/wedding-rsvp-api/internal/config"
	"github.com/fra-anto/wedding-rsvp-api/internal/family"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"github.com/fra-anto/wedding-rsvp-api/internal/notifier"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ResponseHandler serves the public RSVP endpoints.
type ResponseHandler struct {
	db        *gorm.DB
	cfg       *config.Config
	notifiers []notifier.ResponseNotifier
	log       zerolog.Logger
}

func NewResponseHandler(db *gorm.DB, cfg *config.Config, notifiers []notifier.ResponseNotifier, log zerolog.Logger) *ResponseHandler {
	return &ResponseHandler{
		db:        db,
		cfg:       cfg,
		notifiers: notifiers,
		log:       log.With().Str("component", "response").Logger(),
	}
}

type ResponseFields struct {
	ResponseStatus      models.ResponseStatus `json:"response_status"`
	MenuType            *models.MenuType      `json:"menu_type,omitempty"`
	DietaryRequirements *string               `json:"dietary_requirements,omitempty"`
}

type SingleResponseInput struct {
	ID   uint `path:"id"`
	Body ResponseFields
}

func (h *ResponseHandler) HandleSingle(ctx context.Context, input *SingleResponseInput) (*GuestOutput, error) {
	if !respondable(input.Body.ResponseStatus) {
		return nil, huma.Error400BadRequest(`response_status deve essere "confirmed" o "declined"`)
	}

	var guest models.Guest
	if err := h.db.First(&guest, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Ospite non trovato")
		}
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	updated, err := h.applyResponse(guest.ID, input.Body)
	if err != nil {
		return nil, err
	}

	h.notifyResponse(ctx, []models.Guest{*updated})

	res := &GuestOutput{}
	res.Body.Guest = *updated
	return res, nil
}

type MemberResponse struct {
	GuestID uint `json:"guest_id"`
	ResponseFields
}

type FamilyResponseInput struct {
	Body struct {
		Responses         []MemberResponse `json:"responses"`
		NotificationEmail *string          `json:"notification_email,omitempty"`
	}
}

// HandleFamily applies a batch of per-member responses. Invalid or unknown
// entries are skipped, not rejected: the rest of the family's answers
// still land. The optional notification email, when well-formed, is
// persisted on the batch's resolved group leader rather than on the
// individual responder.
func (h *ResponseHandler) HandleFamily(ctx context.Context, input *FamilyResponseInput) (*GuestListOutput, error) {
	if len(input.Body.Responses) == 0 {
		return nil, huma.Error400BadRequest("Array di risposte richiesto")
	}

	updated := []models.Guest{}
	for _, response := range input.Body.Responses {
		if !respondable(response.ResponseStatus) {
			continue
		}

		var guest models.Guest
		if err := h.db.First(&guest, response.GuestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, huma.Error500InternalServerError("Errore interno del server")
		}

		g, err := h.applyResponse(guest.ID, response.ResponseFields)
		if err != nil {
			return nil, err
		}
		updated = append(updated, *g)
	}

	if len(updated) > 0 {
		h.persistNotificationEmail(input.Body.NotificationEmail, updated[0])
		h.notifyResponse(ctx, updated)
	}

	res := &GuestListOutput{}
	res.Body.Guests = updated
	return res, nil
}

func respondable(status models.ResponseStatus) bool {
	return status == models.ResponseConfirmed || status == models.ResponseDeclined
}

// applyResponse writes one RSVP: confirming defaults the menu to adulto,
// declining nulls it. The response date is always refreshed.
func (h *ResponseHandler) applyResponse(id uint, fields ResponseFields) (*models.Guest, error) {
	var menu interface{}
	if fields.ResponseStatus == models.ResponseConfirmed {
		m := models.MenuAdulto
		if fields.MenuType != nil && models.ValidMenuType(*fields.MenuType) {
			m = *fields.MenuType
		}
		menu = m
	}

	var dietary interface{}
	if fields.DietaryRequirements != nil && *fields.DietaryRequirements != "" {
		dietary = *fields.DietaryRequirements
	}

	updates := map[string]interface{}{
		"response_status":      fields.ResponseStatus,
		"response_date":        time.Now(),
		"menu_type":            menu,
		"dietary_requirements": dietary,
	}
	if err := h.db.Model(&models.Guest{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	var updated models.Guest
	if err := h.db.First(&updated, id).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}
	return &updated, nil
}

func (h *ResponseHandler) persistNotificationEmail(email *string, responder models.Guest) {
	if email == nil {
		return
	}
	address := strings.TrimSpace(*email)
	if address == "" || !emailPattern.MatchString(address) {
		h.log.Warn().Str("email", address).Msg("ignoring malformed notification email")
		return
	}

	var all []models.Guest
	if err := h.db.Find(&all).Error; err != nil {
		h.log.Error().Err(err).Msg("failed to load guests for leader resolution")
		return
	}

	leader := family.ResolveLeader(all, responder)
	if leader == nil {
		h.log.Warn().Uint("guest_id", responder.ID).Msg("no leader found for notification email")
		return
	}

	if err := h.db.Model(&models.Guest{}).
		Where("id = ?", leader.ID).
		Update("email", address).Error; err != nil {
		h.log.Error().Err(err).Uint("leader_id", leader.ID).Msg("failed to persist notification email")
	}
}

// notifyResponse fans the recap out to the configured channels. Best
// effort only: RSVPs never fail because a notification did.
func (h *ResponseHandler) notifyResponse(ctx context.Context, guests []models.Guest) {
	for _, n := range h.notifiers {
		if n == nil {
			continue
		}
		if err := n.NotifyResponse(ctx, guests); err != nil {
			h.log.Error().Err(err).Msg("response notification failed")
		}
	}
}
