package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/storefront/internal/platform/icons"
)

// ToastRegionID is the element that collects toast notifications.
const ToastRegionID = "toast-region"

// Toast is one rendered notification.
type Toast struct {
	Kind        string
	Title       string
	Description string
	CloseLabel  string
}

// ToastItem renders a single toast.
func ToastItem(toast Toast) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var m markup
		writeToast(&m, toast)
		return m.flush(w)
	})
}

// ToastOOB renders a toast as an HTMX out-of-band append to the toast region.
func ToastOOB(toast Toast) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var m markup
		m.raw(`<div`)
		m.attr("id", ToastRegionID)
		m.raw(` hx-swap-oob="beforeend">`)
		writeToast(&m, toast)
		m.raw(`</div>`)
		return m.flush(w)
	})
}

func writeToast(m *markup, toast Toast) {
	kind := toast.Kind
	if kind == "" {
		kind = "success"
	}
	closeLabel := toast.CloseLabel
	if closeLabel == "" {
		closeLabel = "Close"
	}
	m.raw(`<div role="status" data-toast`)
	m.attr("class", "toast toast-"+kind)
	m.raw(`>`)
	m.icon(icons.IDSuccess, "icon toast-icon")
	m.raw(`<div class="toast-body"><p class="toast-title">`)
	m.text(toast.Title)
	m.raw(`</p>`)
	if toast.Description != "" {
		m.raw(`<p class="toast-description">`)
		m.text(toast.Description)
		m.raw(`</p>`)
	}
	m.raw(`</div><button type="button" class="toast-close" data-toast-close`)
	m.attr("aria-label", closeLabel)
	m.raw(`>`)
	m.icon(icons.IDClose, "icon")
	m.raw(`</button></div>`)
}
