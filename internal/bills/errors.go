package bills

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/mmeshcher/billed/internal/i18n"
	"github.com/mmeshcher/billed/internal/store"
)

var statusInMessage = regexp.MustCompile(`\b(404|500)\b`)

// StatusCode извлекает HTTP-код из ошибки хранилища. Возвращает 0, если код неизвестен.
func StatusCode(err error) int {
	if err == nil {
		return 0
	}

	var se *store.StatusError
	if errors.As(err, &se) {
		return se.Code
	}

	if m := statusInMessage.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return code
	}
	return 0
}

// ErrorMessage переводит ошибку загрузки расходов в сообщение для страницы.
func ErrorMessage(err error, p *i18n.Printer) string {
	if err == nil {
		return ""
	}
	if p == nil {
		p = i18n.New("")
	}

	switch StatusCode(err) {
	case http.StatusNotFound:
		return p.Sprintf(i18n.MsgNotFound, http.StatusNotFound)
	case http.StatusInternalServerError:
		return p.Sprintf(i18n.MsgServerError, http.StatusInternalServerError)
	default:
		return p.Sprintf(i18n.MsgGenericError)
	}
}
