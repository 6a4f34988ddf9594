// Package store содержит общие для хранилищ расходов типы и хранилище в памяти.
package store

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/billed/internal/model"
)

// StatusError описывает отказ хранилища с HTTP-кодом ответа.
type StatusError struct {
	Code    int
	Message string
}

// NewStatusError создаёт ошибку хранилища с сообщением по умолчанию для кода.
func NewStatusError(code int) *StatusError {
	return &StatusError{Code: code, Message: fmt.Sprintf("Erreur %d", code)}
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("store: status %d %s", e.Code, http.StatusText(e.Code))
}

// Memory хранит расходы в памяти. Используется в демо-режиме и в тестах.
type Memory struct {
	bills []model.Bill
	err   error
}

// NewMemory создаёт хранилище с указанными записями.
func NewMemory(bills ...model.Bill) *Memory {
	return &Memory{bills: slices.Clone(bills)}
}

// NewFailing создаёт хранилище, каждый вызов List которого завершается ошибкой err.
func NewFailing(err error) *Memory {
	return &Memory{err: err}
}

// List возвращает копию сохранённых записей.
func (m *Memory) List(ctx context.Context) ([]model.Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return slices.Clone(m.bills), nil
}

// Fixtures возвращает демонстрационный набор расходов.
func Fixtures() []model.Bill {
	return []model.Bill{
		{
			ID:         "47qAXb6fIm2zOKkLzMro",
			VAT:        "80",
			FileURL:    "https://test.storage.tld/v0/b/billable-677b6.appspot.com/o/preview-facture-free-201801-pdf-1.jpg?alt=media&token=c1640e12-a24b-4b11-ae52-529112e9602a",
			Status:     model.BillStatusPending,
			Type:       "Hôtel et logement",
			Commentary: "séminaire billed",
			Name:       "encore",
			FileName:   "preview-facture-free-201801-pdf-1.jpg",
			Date:       "2004-04-04",
			Amount:     decimal.NewFromInt(400),
			Email:      "a@a",
			PCT:        20,
		},
		{
			ID:         "BeKy5Mo4jkmdfPGYpTxZ",
			VAT:        "",
			FileURL:    "https://test.storage.tld/v0/b/billable-677b6.appspot.com/o/1592770761.jpeg?alt=media&token=7685cd61-c112-42bc-9929-8a799bb82d8b",
			Status:     model.BillStatusRefused,
			Type:       "Transports",
			Commentary: "",
			Name:       "test1",
			FileName:   "1592770761.jpeg",
			Date:       "2001-01-01",
			Amount:     decimal.NewFromInt(100),
			Email:      "a@a",
			PCT:        20,
		},
		{
			ID:         "UIUZtnPQvnbFnB0ozvJh",
			VAT:        "30",
			FileURL:    "https://test.storage.tld/v0/b/billable-677b6.appspot.com/o/facture-client-php.png?alt=media&token=571d34cb-9c8f-430a-af52-66221cae1da3",
			Status:     model.BillStatusAccepted,
			Type:       "Services en ligne",
			Commentary: "",
			Name:       "test3",
			FileName:   "facture-client-php-exportee-dans-document-pdf-enregistre-sur-disque-dur.png",
			Date:       "2003-03-03",
			Amount:     decimal.NewFromInt(300),
			Email:      "a@a",
			PCT:        20,
		},
		{
			ID:         "qcCK3SzECmaZAGRrHjaC",
			VAT:        "",
			FileURL:    "https://test.storage.tld/v0/b/billable-677b6.appspot.com/o/preview-facture-free-201801-pdf-1.jpg?alt=media&token=4df6ed2c-12c8-42a2-b013-346c1346f732",
			Status:     model.BillStatusRefused,
			Type:       "Restaurants et bars",
			Commentary: "",
			Name:       "test2",
			FileName:   "preview-facture-free-201801-pdf-1.jpg",
			Date:       "2002-02-02",
			Amount:     decimal.NewFromInt(200),
			Email:      "a@a",
			PCT:        20,
		},
	}
}
