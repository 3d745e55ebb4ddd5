package infra

// pdf.go generates receipt-style PDFs for completed sales using go-pdf/fpdf.
// The output file is saved to storagePath/receipt_{sale_id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReceiptPDF writes a compact receipt for a completed sale and returns
// the absolute path to the generated file. The sale's Variant (and its
// Product) must be preloaded.
func GenerateReceiptPDF(sale *model.Sale, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", sale.ID)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm x 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Sale Receipt", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.SaleDate.Format("02/01/2006  15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	productName := ""
	sku := ""
	if sale.Variant != nil {
		sku = sale.Variant.SKU
		if sale.Variant.Product != nil {
			productName = sale.Variant.Product.Name
		}
	}
	if len(productName) > 30 {
		productName = productName[:29] + "…"
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, productName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "SKU: "+sku, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Quantity: %d", sale.QuantitySold), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.5, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.5, 6, "$"+sale.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
