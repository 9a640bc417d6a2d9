// Package export renders printable artifacts: the per-household invitation
// PDF with QR confirmation links, and tabular participation reports.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fra-anto/wedding-rsvp-api/internal/family"
	"github.com/fra-anto/wedding-rsvp-api/internal/guestid"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	weddingDate  = "domenica 13 settembre 2026"
	venueName    = "Villa Caiselli"
	venueAddress = "via della ferrovia 8, Pavia di Udine"

	fullSingle    = "Siamo felici di averti con noi in questo giorno speciale! Ti aspettiamo alle ore 12 per celebrare e festeggiare assieme questo grande giorno. Seguirà in villa il ricevimento con il pranzo."
	fullMultiple  = "Siamo felici di avervi con noi in questo giorno speciale! Vi aspettiamo alle ore 12 per celebrare e festeggiare assieme questo grande giorno. Seguirà in villa il ricevimento con il pranzo."
	eveSingle     = "Siamo felici di averti con noi in questo giorno speciale! Ti aspettiamo per festeggiare con te dalle ore 20.00 per il brindisi con taglio della torta."
	eveMultiple   = "Siamo felici di avervi con noi in questo giorno speciale! Vi aspettiamo per festeggiare con voi dalle ore 20.00 per il brindisi con taglio della torta."
	familyConfirm = "Vi chiediamo di confermare la presenza per tutti i membri della famiglia."
	qrSingle      = "Scansiona il qr code oppure contattaci per confermare la tua presenza"
	qrMultiple    = "Scansionate il qr code oppure contattateci per confermare la vostra presenza"
)

// Exporter renders invitation PDFs.
type Exporter struct {
	coupleNames string
	baseURL     string
	log         zerolog.Logger
}

func NewExporter(coupleNames, baseURL string, log zerolog.Logger) *Exporter {
	return &Exporter{
		coupleNames: coupleNames,
		baseURL:     baseURL,
		log:         log.With().Str("component", "export").Logger(),
	}
}

// InvitationPDF renders one A4 landscape page per household, ordered by
// leader surname then name, and returns the merged document plus its
// download filename. A household whose page fails to render is logged and
// skipped; the document contains the pages that succeeded.
func (e *Exporter) InvitationPDF(groups map[uint][]models.Guest) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, key := range family.SortedGroupKeys(groups) {
		members := groups[key]
		if err := e.addInvitationPage(pdf, tr, members); err != nil {
			e.log.Error().Err(err).Uint("leader_id", members[0].ID).Msg("failed to render invitation page")
			continue
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write PDF: %w", err)
	}

	filename := fmt.Sprintf("partecipazioni-%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (e *Exporter) addInvitationPage(pdf *gofpdf.Fpdf, tr func(string) string, members []models.Guest) error {
	leader := members[0]

	confirmURL := fmt.Sprintf("%s/confirm?id=%s", e.baseURL, guestid.Encode(leader.ID))
	qrPNG, err := qrcode.Encode(confirmURL, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to encode QR code: %w", err)
	}

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}

	message := fullSingle
	qrHint := qrSingle
	if leader.InvitationType == models.InvitationEvening {
		message = eveSingle
	}
	if len(members) > 1 {
		qrHint = qrMultiple
		message = fullMultiple
		if leader.InvitationType == models.InvitationEvening {
			message = eveMultiple
		}
	}

	pdf.AddPage()

	pdf.SetFont("Times", "I", 34)
	pdf.SetY(28)
	pdf.CellFormat(0, 14, tr(e.coupleNames), "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "", 14)
	pdf.CellFormat(0, 8, tr(weddingDate), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s, %s", venueName, venueAddress)), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Times", "B", 20)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s %s", family.FormatNames(names), leader.Surname)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Times", "", 13)
	pdf.SetX(55)
	pdf.MultiCell(187, 7, tr(message), "", "C", false)
	if len(members) > 1 {
		pdf.SetX(55)
		pdf.MultiCell(187, 7, tr(familyConfirm), "", "C", false)
	}
	pdf.Ln(4)

	imageName := fmt.Sprintf("qr-%d", leader.ID)
	pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imageName, 133.5, pdf.GetY(), 30, 30, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.SetY(pdf.GetY() + 33)

	pdf.SetFont("Times", "I", 11)
	pdf.CellFormat(0, 6, tr(qrHint), "", 1, "C", false, 0, "")

	if pdf.Err() {
		return fmt.Errorf("pdf error: %v", pdf.Error())
	}
	return nil
}
