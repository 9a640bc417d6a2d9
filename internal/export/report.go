package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/fra-anto/wedding-rsvp-api/internal/family"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"github.com/xuri/excelize/v2"
)

var reportHeaders = []string{
	"ID", "Nome", "Cognome", "Email", "Gruppo", "Invito",
	"Stato", "Menu", "Intolleranze", "Data risposta",
}

func reportRow(guests []models.Guest, g models.Guest) []string {
	group := ""
	if leader := family.ResolveLeader(guests, g); leader != nil {
		group = fmt.Sprintf("%d", leader.ID)
	}
	email := ""
	if g.Email != nil {
		email = *g.Email
	}
	menu := ""
	if g.MenuType != nil {
		menu = string(*g.MenuType)
	}
	dietary := ""
	if g.DietaryRequirements != nil {
		dietary = *g.DietaryRequirements
	}
	responseDate := ""
	if g.ResponseDate != nil {
		responseDate = g.ResponseDate.Format("2006-01-02 15:04:05")
	}
	return []string{
		fmt.Sprintf("%d", g.ID), g.Name, g.Surname, email, group,
		string(g.InvitationType), string(g.ResponseStatus), menu, dietary, responseDate,
	}
}

// ParticipationsExcel renders the guest list with RSVP status as an xlsx
// workbook. Returns content, filename and content type.
func ParticipationsExcel(guests []models.Guest) ([]byte, string, string, error) {
	f := excelize.NewFile()
	sheet := "Partecipazioni"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", "", err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, g := range guests {
		for cIdx, value := range reportRow(guests, g) {
			cell, _ := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("partecipazioni-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
}

// ParticipationsCSV renders the same report as CSV.
func ParticipationsCSV(guests []models.Guest) ([]byte, string, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeaders); err != nil {
		return nil, "", "", err
	}
	for _, g := range guests {
		if err := w.Write(reportRow(guests, g)); err != nil {
			return nil, "", "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("partecipazioni-%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, "text/csv", nil
}
