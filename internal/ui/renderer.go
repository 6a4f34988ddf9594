// Package ui формирует HTML-разметку страниц сервиса.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/mmeshcher/billed/internal/i18n"
	"github.com/mmeshcher/billed/internal/model"
	"github.com/mmeshcher/billed/internal/routes"
	"github.com/mmeshcher/billed/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ExpenseTypes перечисляет категории расходов формы создания.
var ExpenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

// Layout содержит общие для страниц данные вертикальной панели.
type Layout struct {
	User session.User
	Lang string

	BillsPath        string
	NewBillPath      string
	NewBillClickPath string
	ExportXLSXPath   string
	ExportPDFPath    string
	BillsActive      bool
	NewBillActive    bool
}

// BillsPage описывает страницу списка расходов. Заполняется либо Data, либо Error.
type BillsPage struct {
	Layout
	Data  []model.BillView
	Error string
	Modal *Modal
}

// NewBillPage описывает страницу формы создания расхода.
type NewBillPage struct {
	Layout
	ExpenseTypes []string
}

// Modal хранит состояние модального окна с подтверждающим документом.
type Modal struct {
	Proof model.Proof
	Shown bool
}

// Show подставляет документ в окно и делает его видимым.
func (m *Modal) Show(p model.Proof) {
	m.Proof = p
	m.Shown = true
}

// Icon представляет иконку строки расхода с её атрибутами.
type Icon struct {
	attrs map[string]string
}

// EyeIcon возвращает иконку просмотра документа для расхода.
func EyeIcon(v model.BillView) Icon {
	return Icon{attrs: map[string]string{
		"data-testid":   "icon-eye",
		"data-bill-url": v.FileURL,
	}}
}

// GetAttribute возвращает значение атрибута иконки.
func (i Icon) GetAttribute(name string) string {
	return i.attrs[name]
}

// Renderer формирует разметку страниц по шаблонам.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer разбирает встроенные шаблоны страниц.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("pages").
		Funcs(template.FuncMap{"t": func(key string, a ...any) string { return fmt.Sprintf(key, a...) }}).
		ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// NewLayout заполняет данные панели для пользователя и активной страницы.
func NewLayout(u session.User, p *i18n.Printer, active string) Layout {
	return Layout{
		User:             u,
		Lang:             p.Tag().String(),
		BillsPath:        routes.Bills,
		NewBillPath:      routes.NewBill,
		NewBillClickPath: routes.NewBillClick,
		ExportXLSXPath:   routes.ExportXLSX,
		ExportPDFPath:    routes.ExportPDF,
		BillsActive:      u.IsEmployee() && active == routes.Bills,
		NewBillActive:    u.IsEmployee() && active == routes.NewBill,
	}
}

// Bills формирует страницу списка расходов или страницу ошибки, если задан Error.
func (r *Renderer) Bills(page BillsPage, p *i18n.Printer) (string, error) {
	if page.Error != "" {
		return r.execute("error", page, p)
	}
	if page.Modal == nil {
		page.Modal = &Modal{}
	}
	return r.execute("bills", page, p)
}

// NewBill формирует страницу формы создания расхода.
func (r *Renderer) NewBill(page NewBillPage, p *i18n.Printer) (string, error) {
	if page.ExpenseTypes == nil {
		page.ExpenseTypes = ExpenseTypes
	}
	return r.execute("newbill", page, p)
}

func (r *Renderer) execute(name string, data any, p *i18n.Printer) (string, error) {
	if p == nil {
		p = i18n.New("")
	}

	tmpl, err := r.tmpl.Clone()
	if err != nil {
		return "", fmt.Errorf("clone templates: %w", err)
	}
	tmpl.Funcs(template.FuncMap{"t": p.Sprintf})

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute %s template: %w", name, err)
	}
	return buf.String(), nil
}
