package bills

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mmeshcher/billed/internal/i18n"
	"github.com/mmeshcher/billed/internal/model"
	"github.com/mmeshcher/billed/internal/validation"
)

// FormatDate переводит дату YYYY-MM-DD в короткую форму "1 Jan. 22", год всегда из двух цифр.
// При ошибке разбора возвращается исходная строка вместе с ошибкой.
func FormatDate(raw string, p *i18n.Printer) (string, error) {
	d, err := validation.ParseBillDate(raw)
	if err != nil {
		return raw, fmt.Errorf("format date %q: %w", raw, err)
	}
	return fmt.Sprintf("%d %s. %02d", d.Day(), p.MonthAbbr(d.Month()), d.Year()%100), nil
}

// FormatBill строит представление расхода. Ошибка формата даты не мешает построению:
// в представление попадает исходная дата.
func FormatBill(b model.Bill, p *i18n.Printer) (model.BillView, error) {
	date, err := FormatDate(b.Date, p)

	return model.BillView{
		ID:         b.ID,
		Date:       date,
		Status:     p.Status(b.Status),
		FileURL:    b.FileURL,
		FileName:   b.FileName,
		Name:       b.Name,
		Type:       b.Type,
		Amount:     b.Amount,
		VAT:        b.VAT,
		PCT:        b.PCT,
		Commentary: b.Commentary,
		Email:      b.Email,
		RawDate:    b.Date,
		RawStatus:  b.Status,
	}, err
}

// SortByDateDesc упорядочивает представления по исходной дате, от новых к старым.
// Записи с неразбираемой датой идут после остальных.
func SortByDateDesc(views []model.BillView) {
	slices.SortStableFunc(views, compareByDateDesc)
}

func compareByDateDesc(a, b model.BillView) int {
	ta, errA := validation.ParseBillDate(a.RawDate)
	tb, errB := validation.ParseBillDate(b.RawDate)

	switch {
	case errA == nil && errB == nil:
		return tb.Compare(ta)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(b.RawDate, a.RawDate)
	}
}
