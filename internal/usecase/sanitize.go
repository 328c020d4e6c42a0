package usecase

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer strips markup from user supplied free text.
type TextSanitizer interface {
	Sanitize(s string) string
}

func defaultSanitizer() TextSanitizer {
	return bluemonday.StrictPolicy()
}

func cleanText(s TextSanitizer, raw string) string {
	return strings.TrimSpace(s.Sanitize(strings.TrimSpace(raw)))
}
