// Package flash provides one-time notices persisted across redirects.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
)

// CookieName is the canonical cookie used for one-time notices.
const CookieName = "sf_flash"

const (
	maxTitleLength       = 256
	maxDescriptionLength = 1024
	// maxCookieValue keeps the whole Set-Cookie header under the 4KB
	// browser cap.
	maxCookieValue = 3800
)

// Kind classifies flash notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice stores one already-localized flash message.
type Notice struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// NoticeSuccess creates a success notice.
func NoticeSuccess(title string, description string) Notice {
	return Notice{Kind: KindSuccess, Title: title, Description: description}
}

// WriteWithPolicy stores a flash notice cookie for the next page render.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	normalized, ok := normalizeNotice(notice)
	if !ok {
		return
	}
	value, ok := encodeNotice(normalized)
	if !ok {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClearWithPolicy reads and clears the flash notice cookie.
func ReadAndClearWithPolicy(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return Notice{}, false
	}
	if w != nil {
		ClearWithPolicy(w, r, policy)
	}
	return decodeNotice(cookie.Value)
}

// ClearWithPolicy expires any flash notice cookie.
func ClearWithPolicy(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// encodeNotice shortens the description until the encoded value fits.
func encodeNotice(notice Notice) (string, bool) {
	for {
		payload, err := json.Marshal(notice)
		if err != nil {
			return "", false
		}
		value := base64.RawURLEncoding.EncodeToString(payload)
		if len(value) <= maxCookieValue {
			return value, true
		}
		runes := []rune(notice.Description)
		if len(runes) == 0 {
			return "", false
		}
		notice.Description = string(runes[:len(runes)/2])
	}
}

func decodeNotice(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalizeNotice(notice)
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Title = truncate(strings.TrimSpace(notice.Title), maxTitleLength)
	notice.Description = truncate(notice.Description, maxDescriptionLength)
	if notice.Title == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
