package notifier

import (
	"errors"
	"testing"

	"github.com/fra-anto/wedding-rsvp-api/internal/family"
)

func TestComposeMessage(t *testing.T) {
	r := family.Recipient{
		LeaderID:    1,
		Name:        "Marco",
		Email:       "marco@example.com",
		MemberCount: 3,
		MemberNames: []string{"Marco", "Anna", "Matteo"},
	}

	got, err := ComposeMessage(r, "Ci siamo quasi!", "Francesca e Antonio", "https://example.com")
	if err != nil {
		t.Fatalf("ComposeMessage returned error: %v", err)
	}

	want := "Ciao Marco, Anna e Matteo,\n\n" +
		"Ci siamo quasi!\n\n" +
		"Un abbraccio,\nFrancesca e Antonio\n\n" +
		"Visita il nostro sito: https://example.com"
	if got != want {
		t.Errorf("unexpected message:\n%q\nwant:\n%q", got, want)
	}
}

func TestComposeMessageSingleRecipient(t *testing.T) {
	r := family.Recipient{
		LeaderID:    4,
		Name:        "Giulia",
		MemberCount: 1,
		MemberNames: []string{"Giulia"},
	}

	got, err := ComposeMessage(r, "body", "Francesca e Antonio", "https://example.com")
	if err != nil {
		t.Fatalf("ComposeMessage returned error: %v", err)
	}
	if want := "Ciao Giulia,"; got[:len(want)] != want {
		t.Errorf("expected greeting %q, got %q", want, got[:len(want)])
	}
}

func TestComposeMessageNoNames(t *testing.T) {
	_, err := ComposeMessage(family.Recipient{LeaderID: 9}, "body", "x", "y")
	if !errors.Is(err, family.ErrNoNames) {
		t.Errorf("expected ErrNoNames, got %v", err)
	}
}
