package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fra-anto/wedding-rsvp-api/internal/config"
	"github.com/fra-anto/wedding-rsvp-api/internal/export"
	"github.com/fra-anto/wedding-rsvp-api/internal/family"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"gorm.io/gorm"
)

// ExportHandler serves the admin download endpoints.
type ExportHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	exporter *export.Exporter
}

func NewExportHandler(db *gorm.DB, cfg *config.Config, exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{db: db, cfg: cfg, exporter: exporter}
}

type ExportInput struct {
	AdminKey string `query:"adminKey"`
}

type FileOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// HandleParticipations renders the printable invitation PDF: one page per
// household with the QR confirmation link.
func (h *ExportHandler) HandleParticipations(ctx context.Context, input *ExportInput) (*FileOutput, error) {
	if err := requireAdminKey(h.cfg, input.AdminKey); err != nil {
		return nil, err
	}

	guests, err := h.allGuests()
	if err != nil {
		return nil, err
	}

	groups := family.GroupByFamily(guests)
	content, filename, err := h.exporter.InvitationPDF(groups)
	if err != nil {
		return nil, huma.Error500InternalServerError("Errore durante l'esportazione delle partecipazioni")
	}

	return &FileOutput{
		ContentType:        "application/pdf",
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Body:               content,
	}, nil
}

type ExportReportInput struct {
	AdminKey string `query:"adminKey"`
	Format   string `query:"format" enum:"xlsx,csv" default:"xlsx"`
}

// HandleReport renders the tabular participation report.
func (h *ExportHandler) HandleReport(ctx context.Context, input *ExportReportInput) (*FileOutput, error) {
	if err := requireAdminKey(h.cfg, input.AdminKey); err != nil {
		return nil, err
	}

	guests, err := h.allGuests()
	if err != nil {
		return nil, err
	}

	var (
		content     []byte
		filename    string
		contentType string
		exportErr   error
	)
	if input.Format == "csv" {
		content, filename, contentType, exportErr = export.ParticipationsCSV(guests)
	} else {
		content, filename, contentType, exportErr = export.ParticipationsExcel(guests)
	}
	if exportErr != nil {
		return nil, huma.Error500InternalServerError("Errore durante l'esportazione delle partecipazioni")
	}

	return &FileOutput{
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Body:               content,
	}, nil
}

func (h *ExportHandler) allGuests() ([]models.Guest, error) {
	var guests []models.Guest
	if err := h.db.Order("surname, name, created_at DESC").Find(&guests).Error; err != nil {
		return nil, huma.Error500InternalServerError("Errore interno del server")
	}
	if len(guests) == 0 {
		return nil, huma.Error404NotFound("Nessun ospite trovato")
	}
	return guests, nil
}
