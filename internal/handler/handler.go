// Package handler содержит HTTP-обработчики страниц сервиса учёта расходов.
package handler

import (
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mmeshcher/billed/internal/bills"
	"github.com/mmeshcher/billed/internal/export"
	"github.com/mmeshcher/billed/internal/i18n"
	"github.com/mmeshcher/billed/internal/metrics"
	"github.com/mmeshcher/billed/internal/middleware"
	"github.com/mmeshcher/billed/internal/model"
	"github.com/mmeshcher/billed/internal/routes"
	"github.com/mmeshcher/billed/internal/session"
	"github.com/mmeshcher/billed/internal/ui"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// Settings содержит параметры отображения страниц.
type Settings struct {
	Locale     string
	ModalWidth int
}

// Handler реализует HTTP-обработчики страниц расходов.
type Handler struct {
	store          bills.Store
	renderer       *ui.Renderer
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
	settings       Settings
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s bills.Store, renderer *ui.Renderer, logger *zap.Logger, auth *middleware.AuthMiddleware, settings Settings) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:          s,
		renderer:       renderer,
		logger:         logger,
		authMiddleware: auth,
		settings:       settings,
	}
}

func (h *Handler) controller(r *http.Request, opts bills.Options) *bills.Controller {
	st, _ := session.FromContext(r.Context())

	opts.Store = h.store
	opts.Session = st
	opts.Printer = i18n.New(h.settings.Locale)
	opts.Logger = h.logger
	opts.ModalWidth = h.settings.ModalWidth
	return bills.NewController(opts)
}

// Bills отображает список расходов сотрудника. Параметр proof открывает документ расхода в модальном окне.
func (h *Handler) Bills(w http.ResponseWriter, r *http.Request) {
	modal := &ui.Modal{}
	c := h.controller(r, bills.Options{Modal: modal})
	p := c.Printer()

	u, _ := c.User()
	page := ui.BillsPage{
		Layout: ui.NewLayout(u, p, routes.Bills),
		Modal:  modal,
	}

	views, err := c.LoadBills(r.Context())
	if err != nil {
		code := bills.StatusCode(err)
		h.logger.Error("load bills error", zap.Error(err), zap.Int("status", code))
		metrics.IncPageError(statusLabel(code))
		page.Error = bills.ErrorMessage(err, p)
	} else {
		page.Data = views
		if v, ok := findBill(views, r.URL.Query().Get("proof")); ok {
			c.HandleClickIconEye(ui.EyeIcon(v))
		}
	}

	markup, err := h.renderer.Bills(page, p)
	if err != nil {
		h.logger.Error("render bills page error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeHTML(w, markup)
}

// ClickNewBill обрабатывает нажатие кнопки создания расхода и перенаправляет на форму.
func (h *Handler) ClickNewBill(w http.ResponseWriter, r *http.Request) {
	navigated := false
	c := h.controller(r, bills.Options{
		Navigator: bills.NavigatorFunc(func(path string) {
			navigated = true
			http.Redirect(w, r, path, http.StatusSeeOther)
		}),
	})

	c.HandleClickNewBill()

	if !navigated {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NewBill отображает форму создания расхода.
func (h *Handler) NewBill(w http.ResponseWriter, r *http.Request) {
	c := h.controller(r, bills.Options{})
	p := c.Printer()
	u, _ := c.User()

	markup, err := h.renderer.NewBill(ui.NewBillPage{Layout: ui.NewLayout(u, p, routes.NewBill)}, p)
	if err != nil {
		h.logger.Error("render new bill page error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeHTML(w, markup)
}

// ExportXLSX выгружает отсортированный список расходов в XLSX.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", contentTypeXLSX, export.BillsXLSX)
}

// ExportPDF выгружает отсортированный список расходов в PDF.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pdf", contentTypePDF, export.BillsPDF)
}

func (h *Handler) export(
	w http.ResponseWriter,
	r *http.Request,
	format, contentType string,
	build func([]model.BillView, *i18n.Printer) ([]byte, error),
) {
	c := h.controller(r, bills.Options{})

	views, err := c.LoadBills(r.Context())
	if err != nil {
		code := bills.StatusCode(err)
		if code == 0 {
			code = http.StatusInternalServerError
		}
		h.logger.Error("export bills error", zap.String("format", format), zap.Error(err))
		metrics.IncExport(format, metrics.ResultError)
		http.Error(w, http.StatusText(code), code)
		return
	}

	data, err := build(views, c.Printer())
	if err != nil {
		h.logger.Error("build export error", zap.String("format", format), zap.Error(err))
		metrics.IncExport(format, metrics.ResultError)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	metrics.IncExport(format, metrics.ResultSuccess)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="bills.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Health сообщает, что сервис запущен.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func findBill(views []model.BillView, id string) (model.BillView, bool) {
	if id == "" {
		return model.BillView{}, false
	}
	for _, v := range views {
		if v.ID == id {
			return v, true
		}
	}
	return model.BillView{}, false
}

func statusLabel(code int) string {
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code)
}

func writeHTML(w http.ResponseWriter, markup string) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, markup)
}
