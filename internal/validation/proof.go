// Package validation содержит функции валидации входных данных.
package validation

import (
	"net/url"
	"strings"
	"time"
)

// DateLayout задаёт канонический формат даты расхода.
const DateLayout = "2006-01-02"

// ParseBillDate разбирает дату расхода в формате YYYY-MM-DD.
func ParseBillDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// IsProofURL проверяет, что адрес подтверждающего документа можно подставить в img src:
// абсолютный http(s)-адрес с хостом или путь от корня сайта.
func IsProofURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	switch u.Scheme {
	case "http", "https":
		return u.Host != ""
	case "":
		return strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//")
	default:
		return false
	}
}
