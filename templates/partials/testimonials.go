package partials

import (
	"context"
	"io"
	"strconv"

	"file_bridge_app_go/services/carousel"
	"file_bridge_app_go/services/content"
	"file_bridge_app_go/services/i18n"
	"file_bridge_app_go/templates/components"

	"github.com/a-h/templ"
)

// Testimonials renders the carousel at its current position. Arrows and dots
// both link to an absolute index so the server never has to replay a move.
func Testimonials(variant string, car *carousel.Carousel[content.Testimonial]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		current := car.Current()
		href := func(i int) string {
			return "/partials/testimonials/" + strconv.Itoa(i) + "?" + variantQuery(variant)
		}

		h.Raw(`<div id="testimonial-carousel" class="carousel"`).
			Attr("data-index", strconv.Itoa(car.Index())).
			Attr("data-count", strconv.Itoa(car.Len())).
			Raw(`>`)

		h.Raw(`<figure class="testimonial"><blockquote>`).Text(current.Quote).Raw(`</blockquote><figcaption>`)
		if current.ImageURL != "" {
			h.Raw(`<img class="avatar" loading="lazy"`).Attr("src", current.ImageURL).Attr("alt", current.Author).Raw(`>`)
		}
		h.Raw(`<strong>`).Text(current.Author).Raw(`</strong><span>`).Text(current.Role).Raw(`</span></figcaption></figure>`)

		h.Raw(`<div class="carousel-controls">`)
		arrow(h, href(car.PreviousIndex()), i18n.T(ctx, "carousel.previous"), "carousel-prev", "&lsaquo;")
		h.Raw(`<div class="carousel-dots">`)
		for i := range car.Len() {
			h.Raw(`<button type="button"`).
				Attr("hx-get", href(i)).
				Attr("hx-target", "#testimonial-carousel").
				Attr("hx-swap", "outerHTML").
				Attr("aria-label", i18n.T(ctx, "carousel.goto", map[string]interface{}{"n": i + 1}))
			if i == car.Index() {
				h.Attr("class", "dot active").Attr("aria-current", "true")
			} else {
				h.Attr("class", "dot")
			}
			h.Raw(`></button>`)
		}
		h.Raw(`</div>`)
		arrow(h, href(car.NextIndex()), i18n.T(ctx, "carousel.next"), "carousel-next", "&rsaquo;")
		h.Raw(`</div></div>`)
		return h.Err()
	})
}

func arrow(h *components.HTML, href, label, class, glyph string) {
	h.Raw(`<button type="button"`).
		Attr("class", class).
		Attr("hx-get", href).
		Attr("hx-target", "#testimonial-carousel").
		Attr("hx-swap", "outerHTML").
		Attr("aria-label", label).
		Raw(`>` + glyph + `</button>`)
}
