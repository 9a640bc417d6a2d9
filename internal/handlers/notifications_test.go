package handlers

import (
	"context"
	"testing"

	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"github.com/fra-anto/wedding-rsvp-api/internal/notifier"
	"github.com/rs/zerolog"
)

func TestHandleRecipientsDedup(t *testing.T) {
	db := setupTestDB(t)
	handler := NewNotificationHandler(db, testConfig(), notifier.NewEmailSender(testConfig(), zerolog.Nop()))

	email := "famiglia.rossi@example.com"
	leader := models.Guest{Name: "Marco", Surname: "Rossi", Email: &email, InvitationType: models.InvitationFull}
	db.Create(&leader)
	db.Create(&models.Guest{Name: "Anna", Surname: "Rossi", InvitationType: models.InvitationFull, FamilyID: &leader.ID})
	db.Create(&models.Guest{Name: "Matteo", Surname: "Rossi", InvitationType: models.InvitationFull, FamilyID: &leader.ID})

	resp, err := handler.HandleRecipients(context.Background(), &RecipientsInput{AdminKey: testAdminKey})
	if err != nil {
		t.Fatalf("HandleRecipients returned error: %v", err)
	}

	recipients := resp.Body.Recipients
	if len(recipients) != 1 {
		t.Fatalf("expected 1 deduplicated recipient, got %d", len(recipients))
	}
	if recipients[0].Email != email {
		t.Errorf("expected email %q, got %q", email, recipients[0].Email)
	}
	if recipients[0].MemberCount != 3 {
		t.Errorf("expected 3 family members, got %d", recipients[0].MemberCount)
	}
}

func TestHandleSendWithoutEmails(t *testing.T) {
	db := setupTestDB(t)
	handler := NewNotificationHandler(db, testConfig(), notifier.NewEmailSender(testConfig(), zerolog.Nop()))

	db.Create(&models.Guest{Name: "Marco", Surname: "Rossi", InvitationType: models.InvitationFull})

	input := &SendNotificationsInput{}
	input.Body.AdminKey = testAdminKey
	input.Body.MessageBody = "Vi aspettiamo!"

	if _, err := handler.HandleSend(context.Background(), input); err == nil {
		t.Fatal("expected error when no guest has an email, got nil")
	}
}

func TestHandleSendRequiresMessage(t *testing.T) {
	db := setupTestDB(t)
	handler := NewNotificationHandler(db, testConfig(), notifier.NewEmailSender(testConfig(), zerolog.Nop()))

	input := &SendNotificationsInput{}
	input.Body.AdminKey = testAdminKey
	input.Body.MessageBody = "   "

	if _, err := handler.HandleSend(context.Background(), input); err == nil {
		t.Fatal("expected error for blank message, got nil")
	}
}

func TestHandleSendCountsRecipients(t *testing.T) {
	db := setupTestDB(t)
	// SMTP left unconfigured: sends are logged and dropped, not failed.
	handler := NewNotificationHandler(db, testConfig(), notifier.NewEmailSender(testConfig(), zerolog.Nop()))

	rossi := "famiglia.rossi@example.com"
	bianchi := "luca.bianchi@example.com"
	leader := models.Guest{Name: "Marco", Surname: "Rossi", Email: &rossi, InvitationType: models.InvitationFull}
	db.Create(&leader)
	db.Create(&models.Guest{Name: "Anna", Surname: "Rossi", InvitationType: models.InvitationFull, FamilyID: &leader.ID})
	db.Create(&models.Guest{Name: "Luca", Surname: "Bianchi", Email: &bianchi, InvitationType: models.InvitationEvening})

	input := &SendNotificationsInput{}
	input.Body.AdminKey = testAdminKey
	input.Body.MessageBody = "Vi aspettiamo!"

	resp, err := handler.HandleSend(context.Background(), input)
	if err != nil {
		t.Fatalf("HandleSend returned error: %v", err)
	}

	if resp.Body.TotalRecipients != 2 {
		t.Errorf("expected 2 recipients, got %d", resp.Body.TotalRecipients)
	}
	if resp.Body.SentCount != 2 {
		t.Errorf("expected 2 sent, got %d", resp.Body.SentCount)
	}
	if resp.Body.FailedCount != 0 {
		t.Errorf("expected 0 failed, got %d", resp.Body.FailedCount)
	}
}
