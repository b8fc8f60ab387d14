package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 100
)

// pagination разбирает page/per_page. Нечисловой и выходящий за нижнюю
// границу ввод откатывается к значениям по умолчанию, верхняя граница
// per_page зажимается в 100.
func pagination(c *gin.Context) (int, int) {
	page, pageErr := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, perErr := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if pageErr != nil || perErr != nil {
		return defaultPage, defaultPerPage
	}
	if page < 1 {
		page = defaultPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	} else if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// parseDate разбирает ISO-8601 границу диапазона, мусор молча игнорируется
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}
