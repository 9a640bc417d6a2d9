package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fra-anto/wedding-rsvp-api/internal/family"
	"github.com/fra-anto/wedding-rsvp-api/internal/guestid"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"github.com/fra-anto/wedding-rsvp-api/internal/tokencache"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const visitorCookie = "visitor_id"

// LookupHandler serves the public guest lookups used by the confirmation
// page: free search, legacy surname lookup, and QR-token resolution.
type LookupHandler struct {
	db    *gorm.DB
	cache tokencache.Cache
	log   zerolog.Logger
}

func NewLookupHandler(db *gorm.DB, cache tokencache.Cache, log zerolog.Logger) *LookupHandler {
	return &LookupHandler{db: db, cache: cache, log: log.With().Str("component", "lookup").Logger()}
}

type GuestWithFamilyOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Guest         models.Guest   `json:"guest"`
		FamilyMembers []models.Guest `json:"familyMembers"`
	}
}

type SearchGuestInput struct {
	Name    string `query:"name"`
	Surname string `query:"surname"`
}

func (h *LookupHandler) HandleSearch(ctx context.Context, input *SearchGuestInput) (*GuestWithFamilyOutput, error) {
	name := strings.TrimSpace(input.Name)
	surname := strings.TrimSpace(input.Surname)
	if name == "" && surname == "" {
		return nil, huma.Error400BadRequest("Nome o cognome richiesto")
	}

	query := h.db.Model(&models.Guest{})
	if name != "" {
		lower := strings.ToLower(name)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(name) = ?", "%"+lower+"%", lower)
	}
	if surname != "" {
		lower := strings.ToLower(surname)
		query = query.Where("LOWER(surname) LIKE ? OR LOWER(surname) = ?", "%"+lower+"%", lower)
	}

	var found []models.Guest
	if err := query.Order("surname, name").Limit(10).Find(&found).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}
	if len(found) == 0 {
		return nil, huma.Error404NotFound("Ospite non trovato. Controlla nome e cognome.")
	}

	return h.buildFamilyOutput(found[0])
}

type SurnameLookupInput struct {
	Surname string `path:"surname"`
}

func (h *LookupHandler) HandleSurname(ctx context.Context, input *SurnameLookupInput) (*GuestWithFamilyOutput, error) {
	surname := strings.TrimSpace(input.Surname)
	if surname == "" {
		return nil, huma.Error400BadRequest("Cognome richiesto")
	}

	lower := strings.ToLower(surname)
	var found []models.Guest
	err := h.db.
		Where("LOWER(surname) LIKE ? OR LOWER(surname) = ?", "%"+lower+"%", lower).
		Order("surname, name").Limit(10).
		Find(&found).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}
	if len(found) == 0 {
		return nil, huma.Error404NotFound("Ospite non trovato. Controlla il tuo cognome.")
	}

	return h.buildFamilyOutput(found[0])
}

type ConfirmLookupInput struct {
	Code   string `path:"code"`
	Cookie string `header:"Cookie"`
}

// HandleConfirm resolves an invitation token (from a QR link) to the guest
// and its household, and remembers the token for the visitor so returning
// guests skip re-entering it.
func (h *LookupHandler) HandleConfirm(ctx context.Context, input *ConfirmLookupInput) (*GuestWithFamilyOutput, error) {
	id, err := guestid.Decode(input.Code)
	if err != nil {
		return nil, huma.Error404NotFound("Ospite non trovato.")
	}

	var guest models.Guest
	if err := h.db.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Ospite non trovato.")
		}
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	out, err := h.buildFamilyOutput(guest)
	if err != nil {
		return nil, err
	}

	visitorID, setCookie := visitorIDFromCookie(input.Cookie)
	out.SetCookie = setCookie
	if h.cache != nil {
		if err := h.cache.Save(ctx, visitorID, input.Code); err != nil {
			h.log.Warn().Err(err).Msg("failed to cache guest code")
		}
	}

	return out, nil
}

type CachedCodeInput struct {
	Cookie string `header:"Cookie"`
}

type CachedCodeOutput struct {
	Body struct {
		Code string `json:"code"`
	}
}

func (h *LookupHandler) HandleCachedCode(ctx context.Context, input *CachedCodeInput) (*CachedCodeOutput, error) {
	res := &CachedCodeOutput{}

	visitorID := cookieValue(input.Cookie, visitorCookie)
	if h.cache == nil || visitorID == "" {
		return res, nil
	}

	code, err := h.cache.Read(ctx, visitorID)
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to read cached guest code")
		return res, nil
	}

	res.Body.Code = code
	return res, nil
}

func (h *LookupHandler) buildFamilyOutput(guest models.Guest) (*GuestWithFamilyOutput, error) {
	var all []models.Guest
	if err := h.db.Find(&all).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	res := &GuestWithFamilyOutput{}
	res.Body.Guest = guest
	res.Body.FamilyMembers = family.Members(all, guest)
	return res, nil
}

// visitorIDFromCookie returns the visitor id from the Cookie header,
// minting a fresh one (and the matching Set-Cookie value) when absent.
func visitorIDFromCookie(header string) (visitorID, setCookie string) {
	if v := cookieValue(header, visitorCookie); v != "" {
		return v, ""
	}

	buf := make([]byte, 16)
	rand.Read(buf)
	visitorID = hex.EncodeToString(buf)

	cookie := http.Cookie{
		Name:     visitorCookie,
		Value:    visitorID,
		Path:     "/",
		MaxAge:   int(tokencache.DefaultTTL.Seconds()),
		HttpOnly: true,
	}
	return visitorID, cookie.String()
}

func cookieValue(header, name string) string {
	for _, part := range strings.Split(header, ";") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && kv[0] == name {
			return kv[1]
		}
	}
	return ""
}
