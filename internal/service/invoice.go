package service

import (
	"bytes"
	"fmt"

	"github.com/furniture-shop/internal/models"

	"github.com/go-pdf/fpdf"
)

const invoiceDateLayout = "Mon Jan 02 2006"

func invoiceFilename(orderID uint) string {
	return fmt.Sprintf("invoice-%d.pdf", orderID)
}

// invoiceItemLines 发票明细行文本
func invoiceItemLines(order *models.Order) []string {
	lines := make([]string, 0, len(order.Items))
	for i, item := range order.Items {
		lines = append(lines, fmt.Sprintf("%d. Product #%d - Qty: %d @ EUR %s = EUR %s",
			i+1,
			item.ProductID,
			item.Quantity,
			item.UnitPrice.String(),
			item.LineTotal().String(),
		))
	}
	return lines
}

// GenerateInvoicePDF 生成订单发票 PDF
func GenerateInvoicePDF(order *models.Order) ([]byte, error) {
	if order == nil {
		return nil, ErrOrderNotFound
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Order ID: %d", order.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Date: %s", order.CreatedAt.Format(invoiceDateLayout)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Total: EUR %s", order.Total.String()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "U", 12)
	pdf.CellFormat(0, 7, "Items:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range invoiceItemLines(order) {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.CellFormat(0, 7, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
