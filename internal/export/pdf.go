// Package export renders invoices as PDF documents.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/arivarton/stamp/internal/config"
	"github.com/arivarton/stamp/internal/model"
	"github.com/arivarton/stamp/internal/wage"
)

// InvoiceDocument bundles everything needed to render one invoice.
type InvoiceDocument struct {
	Invoice      model.Invoice
	Customer     model.Customer
	Company      config.Company
	Workdays     []model.Workday
	WagePerHour  decimal.Decimal
	MinimumHours int
	Currency     string
}

// maturityDays is how long the buyer has to pay.
const maturityDays = 60

// WritePDF renders the invoice into dir and returns the file path.
func WritePDF(doc InvoiceDocument, dir string) (string, error) {
	total, err := wage.Aggregate(doc.Workdays, doc.WagePerHour, doc.MinimumHours)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("invoice_%d_%s_%s.pdf",
		doc.Invoice.ID, doc.Invoice.Year, doc.Invoice.Month))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %d", doc.Invoice.ID), false)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	// Seller block.
	pdf.SetFont("Times", "B", 12)
	pdf.CellFormat(usable, 6, doc.Company.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 9)
	pdf.CellFormat(usable, 4, doc.Company.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 4, doc.Company.ZipCode, "", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 4, "Org nr: "+doc.Company.OrgNr, "", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 4, "Mail: "+doc.Company.Mail, "", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 4, "Phone: "+doc.Company.Phone, "", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Buyer block.
	pdf.SetFont("Times", "B", 12)
	pdf.CellFormat(usable, 6, doc.Customer.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 9)
	pdf.CellFormat(usable, 4, doc.Customer.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 4, doc.Customer.ZipCode, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Invoice metadata.
	created := doc.Invoice.Created
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetFont("Times", "B", 14)
	pdf.CellFormat(usable, 7, "Invoice", "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 9)
	meta := [][2]string{
		{"Invoice nr", fmt.Sprintf("%d", doc.Invoice.ID)},
		{"Invoice date", created.Format("02.01.2006")},
		{"Due date", created.AddDate(0, 0, maturityDays).Format("02.01.2006")},
		{"Period", doc.Invoice.Month + " " + doc.Invoice.Year},
	}
	for _, row := range meta {
		pdf.CellFormat(30, 4, row[0]+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(usable-30, 4, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Workday table.
	colWidths := []float64{36, 24, 24, 40, usable - 124}
	headers := []string{"Date", "From", "To", "Hours", "Wage"}
	pdf.SetFont("Times", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 6, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Times", "", 10)
	for _, wd := range doc.Workdays {
		day, err := wage.Aggregate([]model.Workday{wd}, doc.WagePerHour, doc.MinimumHours)
		if err != nil {
			return "", err
		}
		cells := []string{
			wage.FormatDateSpan(wd.Start, *wd.End),
			wd.Start.Format("15:04"),
			wd.End.Format("15:04"),
			wage.FormatHours(day.Days, day.Hours, day.Minutes),
			wage.FormatWage(day.Wage, doc.Currency),
		}
		for i, c := range cells {
			pdf.CellFormat(colWidths[i], 5, c, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	// Totals.
	pdf.Ln(4)
	pdf.SetFont("Times", "B", 10)
	pdf.CellFormat(usable, 5, "Total hours: "+wage.FormatHours(total.Days, total.Hours, total.Minutes),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 5, "Total wage: "+wage.FormatWage(total.Wage, doc.Currency),
		"", 1, "L", false, 0, "")
	if doc.Company.AccountNumber != "" {
		pdf.Ln(4)
		pdf.SetFont("Times", "", 9)
		pdf.CellFormat(usable, 4, "Account number: "+doc.Company.AccountNumber, "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write invoice pdf: %w", err)
	}
	return path, nil
}
