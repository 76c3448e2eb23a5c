package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const dateLayout = "2006-01-02"

// RenderBalancesPDF renders the balances report as a printable PDF document.
func RenderBalancesPDF(report *BalancesReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Saldos de Proveedores", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Saldos de Proveedores"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	period := fmt.Sprintf("Del %s al %s",
		report.From.Format(dateLayout), report.To.Format(dateLayout))
	pdf.CellFormat(0, 6, tr(period), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(40, 8, tr("Cédula/RUC"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(85, 8, tr("Proveedor"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, tr("Facturas"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, tr("Saldo"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range report.Rows {
		pdf.CellFormat(40, 7, tr(row.SupplierTaxID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(85, 7, tr(row.SupplierName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", row.InvoiceCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, row.Balance.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(150, 8, tr("Total"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, report.Total.StringFixed(2), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render balances pdf: %w", err)
	}

	return buf.Bytes(), nil
}
