package handlers

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fra-anto/wedding-rsvp-api/internal/config"
	"github.com/fra-anto/wedding-rsvp-api/internal/family"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"github.com/fra-anto/wedding-rsvp-api/internal/notifier"
	"gorm.io/gorm"
)

// NotificationHandler serves the admin bulk-notification endpoints.
type NotificationHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	email *notifier.EmailSender
}

func NewNotificationHandler(db *gorm.DB, cfg *config.Config, email *notifier.EmailSender) *NotificationHandler {
	return &NotificationHandler{db: db, cfg: cfg, email: email}
}

type RecipientsInput struct {
	AdminKey string `query:"adminKey"`
}

type RecipientsOutput struct {
	Body struct {
		Recipients []family.Recipient `json:"recipients"`
	}
}

func (h *NotificationHandler) HandleRecipients(ctx context.Context, input *RecipientsInput) (*RecipientsOutput, error) {
	if err := requireAdminKey(h.cfg, input.AdminKey); err != nil {
		return nil, err
	}

	var guests []models.Guest
	if err := h.db.Find(&guests).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	res := &RecipientsOutput{}
	res.Body.Recipients = family.BuildRecipients(guests)
	return res, nil
}

type SendNotificationsInput struct {
	Body struct {
		AdminKey    string `json:"adminKey"`
		MessageBody string `json:"messageBody"`
	}
}

type SendNotificationsOutput struct {
	Body struct {
		SentCount       int `json:"sentCount"`
		FailedCount     int `json:"failedCount"`
		TotalRecipients int `json:"totalRecipients"`
	}
}

func (h *NotificationHandler) HandleSend(ctx context.Context, input *SendNotificationsInput) (*SendNotificationsOutput, error) {
	if err := requireAdminKey(h.cfg, input.Body.AdminKey); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Body.MessageBody) == "" {
		return nil, huma.Error400BadRequest("Il messaggio centrale è obbligatorio")
	}

	var guests []models.Guest
	if err := h.db.Find(&guests).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}

	anyEmail := false
	for _, g := range guests {
		if g.HasEmail() {
			anyEmail = true
			break
		}
	}
	if !anyEmail {
		return nil, huma.Error400BadRequest("Nessun destinatario con email configurata")
	}

	recipients := family.BuildRecipients(guests)
	if len(recipients) == 0 {
		return nil, huma.Error400BadRequest("Nessun destinatario valido trovato")
	}

	result := h.email.SendBulk(ctx, recipients, input.Body.MessageBody)

	res := &SendNotificationsOutput{}
	res.Body.SentCount = result.Sent
	res.Body.FailedCount = result.Failed
	res.Body.TotalRecipients = result.Total
	return res, nil
}
