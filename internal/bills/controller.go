// Package bills реализует контроллер страницы со списком расходов сотрудника.
package bills

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/billed/internal/i18n"
	"github.com/mmeshcher/billed/internal/metrics"
	"github.com/mmeshcher/billed/internal/model"
	"github.com/mmeshcher/billed/internal/routes"
	"github.com/mmeshcher/billed/internal/session"
	"github.com/mmeshcher/billed/internal/validation"
)

// BillURLAttr содержит адрес подтверждающего документа на иконке просмотра.
const BillURLAttr = "data-bill-url"

// DefaultModalWidth используется, если ширина модального окна не задана.
const DefaultModalWidth = 800

// Store описывает хранилище расходов.
type Store interface {
	List(ctx context.Context) ([]model.Bill, error)
}

// Navigator переключает отображаемую страницу на маршрут path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc позволяет использовать функцию как Navigator.
type NavigatorFunc func(path string)

// Navigate вызывает f(path).
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// Modal показывает модальное окно с подтверждающим документом.
type Modal interface {
	Show(proof model.Proof)
}

// Element описывает элемент страницы, по которому кликнул пользователь.
type Element interface {
	GetAttribute(name string) string
}

// Options содержит зависимости контроллера.
type Options struct {
	Store      Store
	Navigator  Navigator
	Modal      Modal
	Session    session.Storage
	Printer    *i18n.Printer
	Logger     *zap.Logger
	ModalWidth int
}

// Controller управляет страницей расходов в пределах одного посещения.
type Controller struct {
	store      Store
	navigator  Navigator
	modal      Modal
	session    session.Storage
	printer    *i18n.Printer
	logger     *zap.Logger
	modalWidth int
}

// NewController создаёт контроллер страницы расходов.
func NewController(opts Options) *Controller {
	c := &Controller{
		store:      opts.Store,
		navigator:  opts.Navigator,
		modal:      opts.Modal,
		session:    opts.Session,
		printer:    opts.Printer,
		logger:     opts.Logger,
		modalWidth: opts.ModalWidth,
	}
	if c.printer == nil {
		c.printer = i18n.New("")
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.modalWidth <= 0 {
		c.modalWidth = DefaultModalWidth
	}
	return c
}

// Printer возвращает принтер локали контроллера.
func (c *Controller) Printer() *i18n.Printer {
	return c.printer
}

// User возвращает текущего пользователя из хранилища сессии.
func (c *Controller) User() (session.User, error) {
	return session.CurrentUser(c.session)
}

// LoadBills запрашивает расходы в хранилище и возвращает их подготовленными к отображению,
// от самого нового к самому старому. Ошибка хранилища возвращается вызывающему без перевода.
func (c *Controller) LoadBills(ctx context.Context) ([]model.BillView, error) {
	if c.store == nil {
		return nil, nil
	}

	start := time.Now()
	raw, err := c.store.List(ctx)
	if err != nil {
		metrics.ObserveBillsFetch(metrics.ResultError, time.Since(start))
		return nil, fmt.Errorf("list bills: %w", err)
	}
	metrics.ObserveBillsFetch(metrics.ResultSuccess, time.Since(start))

	views := make([]model.BillView, 0, len(raw))
	for _, b := range raw {
		v, err := FormatBill(b, c.printer)
		if err != nil {
			c.logger.Warn("bill date left unformatted",
				zap.String("bill_id", b.ID), zap.String("date", b.Date), zap.Error(err))
			metrics.IncMalformedBill()
		}
		views = append(views, v)
	}

	SortByDateDesc(views)

	return views, nil
}

// HandleClickNewBill открывает форму создания расхода.
func (c *Controller) HandleClickNewBill() {
	if c.navigator == nil {
		return
	}
	c.navigator.Navigate(routes.NewBill)
}

// HandleClickIconEye показывает подтверждающий документ расхода, адрес которого хранится на иконке.
// Без корректного адреса окно открывается с пустым изображением.
func (c *Controller) HandleClickIconEye(icon Element) {
	var url string
	if icon != nil {
		url = icon.GetAttribute(BillURLAttr)
	}
	if url != "" && !validation.IsProofURL(url) {
		c.logger.Warn("proof url rejected", zap.String("url", url))
		url = ""
	}

	if c.modal == nil {
		return
	}
	c.modal.Show(model.Proof{
		URL:   url,
		Width: c.modalWidth / 2,
	})
}
