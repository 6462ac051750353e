package content

import (
	"net/http"
	"strings"
	"unicode/utf8"
)

// extracted text shorter than this is treated as effectively inaccessible,
// too little signal to classify
const minReadableLen = 400

// subscription-gate phrases, matched case-insensitively
var paywallSignals = []string{
	"subscribe to continue",
	"subscribe to read",
	"to continue reading",
	"sign in to continue",
	"log in to continue",
	"create an account to continue",
	"become a subscriber",
	"this content is for subscribers",
	"subscribe now to read",
	"already a subscriber",
}

// IsPaywalled reports whether an article page is inaccessible to the reader.
// 401/402/403 statuses are always paywalled regardless of text; otherwise a
// subscription-gate phrase or a near-empty extraction marks the page.
func IsPaywalled(text string, status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusForbidden:
		return true
	}

	lower := strings.ToLower(text)
	for _, signal := range paywallSignals {
		if strings.Contains(lower, signal) {
			return true
		}
	}

	return utf8.RuneCountInString(text) < minReadableLen
}
