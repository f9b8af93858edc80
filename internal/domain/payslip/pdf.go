package payslip

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF produces the printable payslip document for one computed period.
func (s *Service) RenderPDF(ctx context.Context, payslipID string) ([]byte, error) {
	result, err := s.GetPayslip(ctx, payslipID)
	if err != nil {
		return nil, err
	}
	employee, err := s.store.PayslipEmployee(ctx, payslipID)
	if err != nil {
		return nil, err
	}

	slip := result.Payslip

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Busta paga")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Dipendente: %s %s", employee.FirstName, employee.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", employee.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Periodo: %02d/%04d", slip.Month, slip.Year))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(90, 7, "Voce")
	pdf.Cell(25, 7, "Quantita")
	pdf.Cell(30, 7, "Importo unit.")
	pdf.Cell(30, 7, "Totale")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range result.Lines {
		quantity, unit := "", ""
		if line.Quantity.Valid {
			quantity = line.Quantity.Decimal.StringFixed(2)
		}
		if line.UnitAmount.Valid {
			unit = line.UnitAmount.Decimal.StringFixed(4)
		}
		pdf.Cell(90, 6, line.Description)
		pdf.Cell(25, 6, quantity)
		pdf.Cell(30, 6, unit)
		pdf.Cell(30, 6, line.Total.StringFixed(2))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Imponibile fiscale: %s EUR", slip.FiscalBase.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Trattenute: %s EUR", slip.SocialSecurity.Add(slip.IncomeTax).Add(slip.RegionalSurtax).Add(slip.MunicipalSurtax).Add(slip.OtherWithholdings).StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Netto in busta: %s EUR", slip.NetPay.StringFixed(2)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("TFR maturato nel mese: %s EUR", slip.SeveranceAccrued.StringFixed(2)))

	if len(slip.Warnings) > 0 {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Avvisi: %s", strings.Join(slip.Warnings, ", ")))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
