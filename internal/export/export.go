// Package export выгружает список расходов в XLSX и PDF.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mmeshcher/billed/internal/i18n"
	"github.com/mmeshcher/billed/internal/model"
)

const sheetName = "bills"

// Total возвращает сумму расходов.
func Total(views []model.BillView) decimal.Decimal {
	total := decimal.Zero
	for _, v := range views {
		total = total.Add(v.Amount)
	}
	return total
}

func headers(p *i18n.Printer) []string {
	return []string{
		p.Sprintf(i18n.MsgColType),
		p.Sprintf(i18n.MsgColName),
		p.Sprintf(i18n.MsgColDate),
		p.Sprintf(i18n.MsgColAmount),
		p.Sprintf(i18n.MsgColStatus),
	}
}

// BillsXLSX формирует книгу XLSX со строками в порядке отображения и итоговой строкой.
func BillsXLSX(views []model.BillView, p *i18n.Printer) ([]byte, error) {
	if p == nil {
		p = i18n.New("")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range headers(p) {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for i, v := range views {
		row := i + 2
		amount, _ := v.Amount.Float64()
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), v.Type)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), v.Name)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), v.Date)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), amount)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), v.Status)
	}

	totalRow := len(views) + 2
	total, _ := Total(views).Float64()
	_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalRow), p.Sprintf(i18n.MsgTotal))
	_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", totalRow), total)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// BillsPDF формирует PDF-документ со строками в порядке отображения и итоговой строкой.
func BillsPDF(views []model.BillView, p *i18n.Printer) ([]byte, error) {
	if p == nil {
		p = i18n.New("")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(p.Sprintf(i18n.MsgPageTitle)), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr(p.Sprintf(i18n.MsgPageTitle)))
	pdf.Ln(12)

	widths := []float64{40, 50, 30, 30, 30}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers(p) {
		pdf.CellFormat(widths[i], 6, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, v := range views {
		pdf.CellFormat(widths[0], 6, tr(v.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(v.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(v.Date), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, v.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, tr(v.Status), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, tr(p.Sprintf(i18n.MsgTotal)), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 6, Total(views).StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
