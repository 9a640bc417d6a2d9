// Package notifier delivers guest-facing bulk emails and admin-facing
// RSVP notifications.
package notifier

import (
	"context"
	"fmt"

	"github.com/fra-anto/wedding-rsvp-api/internal/family"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
)

// ResponseNotifier is told about confirmed or changed RSVPs. Implementations
// are best effort: a delivery failure must never fail the RSVP itself.
type ResponseNotifier interface {
	NotifyResponse(ctx context.Context, guests []models.Guest) error
}

// BulkResult aggregates the outcome of a bulk send. Failures are counted,
// not escalated: one recipient's failure never aborts the batch.
type BulkResult struct {
	Sent   int
	Failed int
	Total  int
}

// ComposeMessage builds the personalized notification body for one
// recipient: greeting, the admin-supplied message, the couple's closing
// line, and a link to the site.
func ComposeMessage(r family.Recipient, messageBody, coupleNames, siteURL string) (string, error) {
	greeting, err := family.Greeting(r.MemberNames)
	if err != nil {
		return "", fmt.Errorf("recipient %d has no member names: %w", r.LeaderID, err)
	}

	closing := fmt.Sprintf("Un abbraccio,\n%s", coupleNames)
	siteLink := fmt.Sprintf("Visita il nostro sito: %s", siteURL)

	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s", greeting, messageBody, closing, siteLink), nil
}
