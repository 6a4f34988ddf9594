// Package routes содержит пути страниц сервиса.
package routes

const (
	Login   = "/"
	Bills   = "/employee/bills"
	NewBill = "/employee/bill/new"

	NewBillClick = "/employee/bills/new"
	ExportXLSX   = "/employee/bills/export.xlsx"
	ExportPDF    = "/employee/bills/export.pdf"
)
