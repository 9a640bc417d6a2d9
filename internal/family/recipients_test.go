package family

import (
	"reflect"
	"testing"

	"github.com/fra-anto/wedding-rsvp-api/internal/models"
)

func withEmail(g models.Guest, email string) models.Guest {
	g.Email = &email
	return g
}

func TestBuildRecipientsDeduplicatesByLeader(t *testing.T) {
	guests := []models.Guest{
		withEmail(guest(1, "Marco", "Rossi", nil), "a@x.com"),
		guest(2, "Anna", "Rossi", ref(1)),
		withEmail(guest(3, "Matteo", "Rossi", ref(1)), "b@x.com"),
	}

	recipients := BuildRecipients(guests)
	if len(recipients) != 1 {
		t.Fatalf("expected exactly 1 recipient, got %d", len(recipients))
	}

	r := recipients[0]
	if r.LeaderID != 1 {
		t.Errorf("expected leader id 1, got %d", r.LeaderID)
	}
	if r.Email != "a@x.com" {
		t.Errorf("expected leader email a@x.com, got %s", r.Email)
	}
	if r.MemberCount != 3 {
		t.Errorf("expected 3 members, got %d", r.MemberCount)
	}
	if !reflect.DeepEqual(r.MemberNames, []string{"Marco", "Anna", "Matteo"}) {
		t.Errorf("expected member names [Marco Anna Matteo], got %v", r.MemberNames)
	}
}

func TestBuildRecipientsSkipsGroupsWithoutLeaderEmail(t *testing.T) {
	guests := []models.Guest{
		guest(1, "Marco", "Rossi", nil),
		withEmail(guest(2, "Anna", "Rossi", ref(1)), "anna@x.com"),
	}

	recipients := BuildRecipients(guests)
	if len(recipients) != 0 {
		t.Fatalf("expected no recipients when the leader has no email, got %d", len(recipients))
	}
}

func TestBuildRecipientsSkipsDanglingLeader(t *testing.T) {
	guests := []models.Guest{
		withEmail(guest(2, "Anna", "Neri", ref(99)), "anna@x.com"),
	}

	recipients := BuildRecipients(guests)
	if len(recipients) != 0 {
		t.Fatalf("expected no recipients for a dangling family link, got %d", len(recipients))
	}
}

func TestBuildRecipientsIncludesEmaillessDependents(t *testing.T) {
	guests := []models.Guest{
		withEmail(guest(10, "Luca", "Conti", nil), "luca@x.com"),
		guest(11, "Sara", "Conti", ref(10)),
		guest(12, "Pietro", "Conti", ref(10)),
	}

	recipients := BuildRecipients(guests)
	if len(recipients) != 1 {
		t.Fatalf("expected 1 recipient, got %d", len(recipients))
	}
	if !reflect.DeepEqual(recipients[0].MemberNames, []string{"Luca", "Sara", "Pietro"}) {
		t.Errorf("expected member names [Luca Sara Pietro], got %v", recipients[0].MemberNames)
	}
}

func TestBuildRecipientsOrderedBySurname(t *testing.T) {
	guests := []models.Guest{
		withEmail(guest(1, "Luca", "Verdi", nil), "verdi@x.com"),
		withEmail(guest(2, "Marco", "Bianchi", nil), "bianchi@x.com"),
	}

	recipients := BuildRecipients(guests)
	if len(recipients) != 2 {
		t.Fatalf("expected 2 recipients, got %d", len(recipients))
	}
	if recipients[0].Surname != "Bianchi" || recipients[1].Surname != "Verdi" {
		t.Errorf("expected recipients ordered by surname, got %s then %s",
			recipients[0].Surname, recipients[1].Surname)
	}
}

func TestBuildRecipientsEmptyInput(t *testing.T) {
	if got := BuildRecipients(nil); len(got) != 0 {
		t.Errorf("expected no recipients for empty input, got %d", len(got))
	}
}
