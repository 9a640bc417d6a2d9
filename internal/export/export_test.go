package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/fra-anto/wedding-rsvp-api/internal/family"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"github.com/rs/zerolog"
)

func ref(id uint) *uint { return &id }

func exportFixture() []models.Guest {
	email := "marco@example.com"
	menu := models.MenuAdulto
	return []models.Guest{
		{ID: 1, Name: "Marco", Surname: "Rossi", Email: &email, InvitationType: models.InvitationFull,
			ResponseStatus: models.ResponseConfirmed, MenuType: &menu},
		{ID: 2, Name: "Anna", Surname: "Rossi", FamilyID: ref(1), InvitationType: models.InvitationFull,
			ResponseStatus: models.ResponsePending},
		{ID: 3, Name: "Giulia", Surname: "Bianchi", InvitationType: models.InvitationEvening,
			ResponseStatus: models.ResponseDeclined},
	}
}

func TestInvitationPDF(t *testing.T) {
	exporter := NewExporter("Francesca e Antonio", "https://example.com", zerolog.New(os.Stderr))
	groups := family.GroupByFamily(exportFixture())

	content, filename, err := exporter.InvitationPDF(groups)
	if err != nil {
		t.Fatalf("InvitationPDF returned error: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("expected non-empty PDF content")
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Error("output does not look like a PDF document")
	}
	if !strings.HasPrefix(filename, "partecipazioni-") || !strings.HasSuffix(filename, ".pdf") {
		t.Errorf("unexpected filename %q", filename)
	}
}

func TestParticipationsExcel(t *testing.T) {
	content, filename, contentType, err := ParticipationsExcel(exportFixture())
	if err != nil {
		t.Fatalf("ParticipationsExcel returned error: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("expected non-empty workbook")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("unexpected filename %q", filename)
	}
	if !strings.Contains(contentType, "spreadsheet") {
		t.Errorf("unexpected content type %q", contentType)
	}
}

func TestParticipationsCSV(t *testing.T) {
	content, filename, contentType, err := ParticipationsCSV(exportFixture())
	if err != nil {
		t.Fatalf("ParticipationsCSV returned error: %v", err)
	}
	if !strings.HasSuffix(filename, ".csv") {
		t.Errorf("unexpected filename %q", filename)
	}
	if contentType != "text/csv" {
		t.Errorf("unexpected content type %q", contentType)
	}

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d records", len(records))
	}
	if records[0][0] != "ID" || records[0][1] != "Nome" {
		t.Errorf("unexpected header %v", records[0])
	}
	// Dependent resolves to the leader's group.
	if records[2][4] != "1" {
		t.Errorf("expected dependent grouped under leader 1, got %q", records[2][4])
	}
}
