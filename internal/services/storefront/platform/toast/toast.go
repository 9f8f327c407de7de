// Package toast delivers featured-section notifications to the browser.
//
// A Collector gathers notifications raised while handling one request.
// Deliver then hands them to HTMX as an HX-Trigger event plus an
// out-of-band fragment, or to the next full page render as a flash cookie.
package toast

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/tidwall/sjson"

	"github.com/louisbranch/storefront/internal/services/storefront/featured"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/flash"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/httpx"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
	"github.com/louisbranch/storefront/internal/services/storefront/templates"
)

// EventName is the client event raised for each delivered toast.
const EventName = "storefront:toast"

const triggerHeader = "HX-Trigger"

// Collector is a request-scoped featured.NotificationSink.
type Collector struct {
	mu    sync.Mutex
	notes []featured.Notification
}

// Notify records n for delivery.
func (c *Collector) Notify(_ context.Context, n featured.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append(c.notes, n)
}

// Notifications returns the recorded notifications in arrival order.
func (c *Collector) Notifications() []featured.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]featured.Notification, len(c.notes))
	copy(out, c.notes)
	return out
}

// Latest returns the most recent notification.
func (c *Collector) Latest() (featured.Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.notes) == 0 {
		return featured.Notification{}, false
	}
	return c.notes[len(c.notes)-1], true
}

// TriggerPayload builds the HX-Trigger JSON for n. Non-ASCII text is
// escaped so the header survives latin-1 decoding in the browser.
func TriggerPayload(n featured.Notification) (string, error) {
	payload, err := sjson.Set("{}", escapePath(EventName)+".title", n.Title)
	if err != nil {
		return "", fmt.Errorf("set toast title: %w", err)
	}
	payload, err = sjson.Set(payload, escapePath(EventName)+".description", n.Description)
	if err != nil {
		return "", fmt.Errorf("set toast description: %w", err)
	}
	return asciiJSON(payload), nil
}

// Deliver writes the collected notification to the response. HTMX requests
// get a 200 with an HX-Trigger header and an out-of-band toast. Other
// requests get a flash cookie; the caller finishes with a redirect.
func Deliver(w http.ResponseWriter, r *http.Request, c *Collector, policy requestmeta.SchemePolicy, closeLabel string) error {
	var n featured.Notification
	var ok bool
	if c != nil {
		n, ok = c.Latest()
	}
	if !httpx.IsHTMXRequest(r) {
		if ok {
			flash.WriteWithPolicy(w, r, flash.NoticeSuccess(n.Title, n.Description), policy)
		}
		return nil
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	trigger, err := TriggerPayload(n)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	fragment := templates.ToastOOB(templates.Toast{
		Kind:        string(flash.KindSuccess),
		Title:       n.Title,
		Description: n.Description,
		CloseLabel:  closeLabel,
	})
	if err := fragment.Render(httpx.RequestContext(r), &buf); err != nil {
		return fmt.Errorf("render toast: %w", err)
	}
	w.Header().Set(triggerHeader, trigger)
	return httpx.WriteHTML(w, http.StatusOK, buf.String())
}

func escapePath(key string) string {
	var b bytes.Buffer
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func asciiJSON(s string) string {
	var b bytes.Buffer
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case r > 0xFFFF:
			r -= 0x10000
			writeUnicodeEscape(&b, 0xD800+(r>>10))
			writeUnicodeEscape(&b, 0xDC00+(r&0x3FF))
		default:
			writeUnicodeEscape(&b, r)
		}
	}
	return b.String()
}

func writeUnicodeEscape(b *bytes.Buffer, r rune) {
	hex := strconv.FormatInt(int64(r), 16)
	b.WriteString(`\u`)
	for i := len(hex); i < 4; i++ {
		b.WriteByte('0')
	}
	b.WriteString(hex)
}
