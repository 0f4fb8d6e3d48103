package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// sanitizer strips all HTML from user-supplied text before it is stored.
var sanitizer = bluemonday.StrictPolicy()

func sanitizeText(text string) string {
	return strings.TrimSpace(sanitizer.Sanitize(text))
}
