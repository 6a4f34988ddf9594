// Package model содержит доменные сущности сервиса учёта расходов сотрудников.
package model

import "github.com/shopspring/decimal"

// BillStatus описывает статус рассмотрения расхода.
type BillStatus string

const (
	BillStatusPending  BillStatus = "pending"
	BillStatusAccepted BillStatus = "accepted"
	BillStatusRefused  BillStatus = "refused"
)

// Bill представляет запись о расходе в том виде, в котором её отдаёт хранилище.
type Bill struct {
	ID         string          `json:"id"`
	Status     BillStatus      `json:"status"`
	Date       string          `json:"date"`
	FileURL    string          `json:"fileUrl,omitempty"`
	FileName   string          `json:"fileName,omitempty"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	VAT        string          `json:"vat,omitempty"`
	PCT        int             `json:"pct,omitempty"`
	Commentary string          `json:"commentary,omitempty"`
	Email      string          `json:"email,omitempty"`
}

// BillView содержит подготовленные к отображению данные расхода.
type BillView struct {
	ID         string
	Date       string
	Status     string
	FileURL    string
	FileName   string
	Name       string
	Type       string
	Amount     decimal.Decimal
	VAT        string
	PCT        int
	Commentary string
	Email      string

	RawDate   string
	RawStatus BillStatus
}

// Proof описывает содержимое модального окна с подтверждающим документом.
type Proof struct {
	URL   string
	Width int
}
