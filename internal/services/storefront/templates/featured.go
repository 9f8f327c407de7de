package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/storefront/internal/platform/icons"
	"github.com/louisbranch/storefront/internal/services/storefront/featured"
)

// FeaturedProduct renders the featured product section.
func FeaturedProduct(view featured.View) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var m markup
		writeFeaturedProduct(&m, view)
		return m.flush(w)
	})
}

func writeFeaturedProduct(m *markup, view featured.View) {
	m.raw(`<section class="featured" data-section="featured-product">`)
	m.raw(`<div class="featured-container">`)
	m.raw(`<div class="featured-heading"><h2>`)
	m.text(view.Heading)
	m.raw(`</h2><div class="featured-rule"></div></div>`)

	m.raw(`<div class="featured-grid">`)
	m.raw(`<div class="featured-media"><img`)
	m.urlAttr("src", view.Image.Src)
	m.attr("alt", view.Image.Alt)
	m.raw(` class="featured-image" loading="lazy"></div>`)

	m.raw(`<div class="featured-card">`)
	m.raw(`<div class="featured-meta"><span class="featured-badge">`)
	m.text(view.Badge)
	m.raw(`</span><div class="featured-rating"><span class="featured-star" aria-hidden="true">★</span><span>`)
	m.text(view.Rating)
	m.raw(`</span></div></div>`)

	m.raw(`<h3 class="featured-name">`)
	m.text(view.Name)
	m.raw(`</h3>`)

	writePricing(m, view)

	m.raw(`<p class="featured-description line-clamp-3">`)
	m.text(view.Description)
	m.raw(`</p>`)

	writeSwatches(m, view)
	writeSizeChips(m, view)
	writeActions(m, view)

	m.raw(`<div class="featured-detail"><a class="story-link"`)
	m.urlAttr("href", view.Detail.Path)
	m.raw(`>`)
	m.text(view.Detail.Label)
	m.raw(`</a></div>`)

	m.raw(`</div></div></div></section>`)
}

func writePricing(m *markup, view featured.View) {
	m.raw(`<div class="featured-pricing"><span class="featured-price">`)
	m.text(view.Price)
	m.raw(`</span>`)
	if view.Discount != nil {
		m.raw(`<span class="featured-original-price">`)
		m.text(view.OriginalPrice)
		m.raw(`</span><span class="featured-discount">`)
		m.text(view.Discount.Label)
		m.raw(`</span>`)
	}
	m.raw(`</div>`)
}

func writeSwatches(m *markup, view featured.View) {
	m.raw(`<div class="featured-options"><h4>`)
	m.text(view.ColorsLabel)
	m.raw(`</h4><div class="featured-swatches">`)
	for _, swatch := range view.Swatches {
		m.raw(`<span class="swatch"`)
		m.attrs(templ.OrderedAttributes{
			{Key: "data-key", Value: swatch.Key},
			{Key: "title", Value: swatch.Title},
			{Key: "style", Value: swatchStyle(swatch.Fill)},
		})
		m.raw(`></span>`)
	}
	m.raw(`</div></div>`)
}

func writeSizeChips(m *markup, view featured.View) {
	m.raw(`<div class="featured-options"><h4>`)
	m.text(view.SizesLabel)
	m.raw(`</h4><div class="featured-sizes">`)
	for _, chip := range view.SizeChips {
		m.raw(`<span class="size-chip"`)
		m.attr("data-key", chip.Key)
		m.raw(`>`)
		m.text(chip.Label)
		m.raw(`</span>`)
	}
	m.raw(`</div></div>`)
}

func writeActions(m *markup, view featured.View) {
	m.raw(`<div class="featured-actions">`)
	for _, action := range view.Actions {
		m.raw(`<form method="post" class="featured-action"`)
		m.urlAttr("action", action.Path)
		m.urlAttr("hx-post", action.Path)
		m.raw(` hx-swap="none"><button type="submit"`)
		m.attrs(templ.OrderedAttributes{
			{Key: "class", Value: "btn btn-" + string(action.Variant)},
			{Key: "data-action", Value: string(action.Kind)},
		})
		m.raw(`>`)
		m.icon(actionIcon(action.Kind), "icon icon-inline")
		m.text(action.Label)
		m.raw(`</button></form>`)
	}
	m.raw(`</div>`)
}

func actionIcon(kind featured.ActionKind) icons.ID {
	if kind == featured.ActionAddToWishlist {
		return icons.IDWish
	}
	return icons.IDCart
}
