package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fra-anto/wedding-rsvp-api/internal/config"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"gorm.io/gorm"
)

// GuestHandler owns the admin-gated guest-list CRUD.
type GuestHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewGuestHandler(db *gorm.DB, cfg *config.Config) *GuestHandler {
	return &GuestHandler{db: db, cfg: cfg}
}

type ListGuestsInput struct {
	AdminKey string `query:"adminKey"`
}

type GuestListOutput struct {
	Body struct {
		Guests []models.Guest `json:"guests"`
	}
}

func (h *GuestHandler) HandleList(ctx context.Context, input *ListGuestsInput) (*GuestListOutput, error) {
	if err := requireAdminKey(h.cfg, input.AdminKey); err != nil {
		return nil, err
	}

	var guests []models.Guest
	if err := h.db.Order("surname, name, created_at DESC").Find(&guests).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	res := &GuestListOutput{}
	res.Body.Guests = guests
	return res, nil
}

type GuestFields struct {
	Name           string                `json:"name"`
	Surname        string                `json:"surname"`
	InvitationType models.InvitationType `json:"invitation_type"`
	FamilyID       *uint                 `json:"family_id,omitempty"`
	MenuType       *models.MenuType      `json:"menu_type,omitempty"`
}

type CreateGuestInput struct {
	Body struct {
		AdminKey string `json:"adminKey"`
		GuestFields
	}
}

type GuestOutput struct {
	Body struct {
		Guest models.Guest `json:"guest"`
	}
}

func (h *GuestHandler) HandleCreate(ctx context.Context, input *CreateGuestInput) (*GuestOutput, error) {
	if err := requireAdminKey(h.cfg, input.Body.AdminKey); err != nil {
		return nil, err
	}

	fields := input.Body.GuestFields
	if fields.Name == "" || fields.Surname == "" || !models.ValidInvitationType(fields.InvitationType) {
		return nil, huma.Error400BadRequest("Nome, cognome e tipo di invito (full o evening) sono obbligatori")
	}

	familyID, err := h.resolveFamilyLink(fields.FamilyID)
	if err != nil {
		return nil, err
	}

	menu := models.MenuAdulto
	if fields.MenuType != nil && models.ValidMenuType(*fields.MenuType) {
		menu = *fields.MenuType
	}

	guest := models.Guest{
		Name:           fields.Name,
		Surname:        fields.Surname,
		InvitationType: fields.InvitationType,
		FamilyID:       familyID,
		MenuType:       &menu,
		ResponseStatus: models.ResponsePending,
	}
	if err := h.db.Create(&guest).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	res := &GuestOutput{}
	res.Body.Guest = guest
	return res, nil
}

type UpdateGuestInput struct {
	ID   uint `path:"id"`
	Body struct {
		AdminKey string `json:"adminKey"`
		GuestFields
	}
}

func (h *GuestHandler) HandleUpdate(ctx context.Context, input *UpdateGuestInput) (*GuestOutput, error) {
	if err := requireAdminKey(h.cfg, input.Body.AdminKey); err != nil {
		return nil, err
	}

	fields := input.Body.GuestFields
	if fields.Name == "" || fields.Surname == "" {
		return nil, huma.Error400BadRequest("Nome e cognome sono obbligatori")
	}

	var existing models.Guest
	if err := h.db.First(&existing, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Ospite non trovato")
		}
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	familyID, err := h.resolveFamilyLink(fields.FamilyID)
	if err != nil {
		return nil, err
	}

	invitationType := existing.InvitationType
	if models.ValidInvitationType(fields.InvitationType) {
		invitationType = fields.InvitationType
	}

	menu := models.MenuAdulto
	switch {
	case fields.MenuType != nil && models.ValidMenuType(*fields.MenuType):
		menu = *fields.MenuType
	case existing.MenuType != nil:
		menu = *existing.MenuType
	}

	updates := map[string]interface{}{
		"name":            fields.Name,
		"surname":         fields.Surname,
		"invitation_type": invitationType,
		"family_id":       familyID,
		"menu_type":       menu,
	}
	if err := h.db.Model(&existing).Updates(updates).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	var updated models.Guest
	if err := h.db.First(&updated, input.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	res := &GuestOutput{}
	res.Body.Guest = updated
	return res, nil
}

// resolveFamilyLink validates a requested family link and flattens it:
// linking to a guest that is itself a dependent re-points the link at that
// guest's own leader, so chains never form.
func (h *GuestHandler) resolveFamilyLink(familyID *uint) (*uint, error) {
	if familyID == nil {
		return nil, nil
	}

	var linked models.Guest
	if err := h.db.First(&linked, *familyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error400BadRequest("Ospite collegato non trovato")
		}
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	if linked.FamilyID != nil {
		return linked.FamilyID, nil
	}
	return &linked.ID, nil
}

type DeleteGuestInput struct {
	ID       uint   `path:"id"`
	AdminKey string `query:"adminKey"`
}

type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *GuestHandler) HandleDelete(ctx context.Context, input *DeleteGuestInput) (*MessageOutput, error) {
	if err := requireAdminKey(h.cfg, input.AdminKey); err != nil {
		return nil, err
	}

	result := h.db.Delete(&models.Guest{}, input.ID)
	if result.Error != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}
	if result.RowsAffected == 0 {
		return nil, huma.Error404NotFound("Ospite non trovato")
	}

	// Orphan the dependents into leaders rather than cascading the delete.
	if err := h.db.Model(&models.Guest{}).
		Where("family_id = ?", input.ID).
		Update("family_id", nil).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	res := &MessageOutput{}
	res.Body.Message = "Ospite eliminato con successo"
	return res, nil
}
