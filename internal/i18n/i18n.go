// Package i18n содержит локализованные строки страницы расходов.
package i18n

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/mmeshcher/billed/internal/model"
)

// Ключи сообщений каталога.
const (
	MsgPageTitle    = "My expense reports"
	MsgNewBill      = "New expense report"
	MsgNotFound     = "Error %d: resource not found"
	MsgServerError  = "Error %d: internal server error"
	MsgGenericError = "Error: expense reports could not be loaded"
	MsgErrorTitle   = "Error"
	MsgProof        = "Proof"
	MsgNoProof      = "No proof attached"
	MsgColType      = "Type"
	MsgColName      = "Name"
	MsgColDate      = "Date"
	MsgColAmount    = "Amount"
	MsgColStatus    = "Status"
	MsgColActions   = "Actions"
	MsgTotal        = "Total"
	MsgSend         = "Send"
)

var supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(supported)

var translations = map[language.Tag]map[string]string{
	language.French: {
		MsgPageTitle:    "Mes notes de frais",
		MsgNewBill:      "Nouvelle note de frais",
		MsgNotFound:     "Erreur %d : ressource introuvable",
		MsgServerError:  "Erreur %d : erreur interne du serveur",
		MsgGenericError: "Erreur : impossible de charger les notes de frais",
		MsgErrorTitle:   "Erreur",
		MsgProof:        "Justificatif",
		MsgNoProof:      "Aucun justificatif",
		MsgColType:      "Type",
		MsgColName:      "Nom",
		MsgColDate:      "Date",
		MsgColAmount:    "Montant",
		MsgColStatus:    "Statut",
		MsgColActions:   "Actions",
		MsgTotal:        "Total",
		MsgSend:         "Envoyer",
	},
}

var statusLabels = map[language.Tag]map[model.BillStatus]string{
	language.French: {
		model.BillStatusPending:  "En attente",
		model.BillStatusAccepted: "Accepté",
		model.BillStatusRefused:  "Refusé",
	},
	language.English: {
		model.BillStatusPending:  "Pending",
		model.BillStatusAccepted: "Accepted",
		model.BillStatusRefused:  "Refused",
	},
}

// Короткие названия месяцев в том виде, в котором их даёт CLDR.
var shortMonths = map[language.Tag][12]string{
	language.French: {
		"janv.", "févr.", "mars", "avr.", "mai", "juin",
		"juil.", "août", "sept.", "oct.", "nov.", "déc.",
	},
	language.English: {
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	},
}

var cat = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Printer форматирует сообщения для выбранной локали.
type Printer struct {
	tag   language.Tag
	p     *message.Printer
	title cases.Caser
}

// New создаёт Printer для локали вида "fr", "en-GB" или "fr_FR.UTF-8".
// Неизвестные локали сводятся к французской.
func New(locale string) *Printer {
	tag := Match(locale)
	return &Printer{
		tag:   tag,
		p:     message.NewPrinter(tag, message.Catalog(cat)),
		title: cases.Title(tag),
	}
}

// Match возвращает поддерживаемый тег языка, ближайший к locale.
func Match(locale string) language.Tag {
	if locale == "" {
		return supported[0]
	}
	t, err := language.Parse(normalize(locale))
	if err != nil {
		return supported[0]
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

func normalize(locale string) string {
	for i, r := range locale {
		if r == '.' || r == '@' {
			locale = locale[:i]
			break
		}
	}
	b := []byte(locale)
	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}

// Tag возвращает тег языка принтера.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// Sprintf форматирует сообщение каталога.
func (p *Printer) Sprintf(key string, a ...any) string {
	return p.p.Sprintf(key, a...)
}

// Status возвращает подпись статуса. Неизвестный статус возвращается как есть.
func (p *Printer) Status(s model.BillStatus) string {
	if label, ok := statusLabels[p.tag][s]; ok {
		return label
	}
	return string(s)
}

// MonthAbbr возвращает трёхбуквенное сокращение месяца с заглавной буквы.
func (p *Printer) MonthAbbr(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	name := p.title.String(shortMonths[p.tag][m-1])
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}
