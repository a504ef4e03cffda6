package partials

import (
	"context"
	"io"

	"file_bridge_app_go/services/i18n"
	"file_bridge_app_go/templates/components"

	"github.com/a-h/templ"
)

// NavItem is one in-page navigation anchor.
type NavItem struct {
	Href string
	Key  string
}

// NavItems are the header anchors shared by the desktop nav and the mobile menu.
var NavItems = []NavItem{
	{Href: "#services", Key: "nav.services"},
	{Href: "#why-choose-us", Key: "nav.why_us"},
	{Href: "#case-studies", Key: "nav.case_studies"},
	{Href: "#testimonials", Key: "nav.testimonials"},
	{Href: "#contact", Key: "nav.contact"},
}

// MobileMenu renders the collapsible menu. The toggle swaps the whole
// element for the opposite state; landing.js closes it after a link is followed.
func MobileMenu(open bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)

		toggle, label := "/partials/menu?open=true", i18n.T(ctx, "nav.open_menu")
		if open {
			toggle, label = "/partials/menu?open=false", i18n.T(ctx, "nav.close_menu")
		}

		h.Raw(`<div id="mobile-menu" class="mobile-menu"`)
		if open {
			h.Attr("data-state", "open")
		} else {
			h.Attr("data-state", "closed")
		}
		h.Raw(`><button type="button" class="menu-toggle"`).
			Attr("hx-get", toggle).
			Attr("hx-target", "#mobile-menu").
			Attr("hx-swap", "outerHTML").
			Attr("aria-label", label)
		if open {
			h.Attr("aria-expanded", "true").Raw(`>&times;</button>`)
		} else {
			h.Attr("aria-expanded", "false").Raw(`>&#9776;</button>`)
		}

		if open {
			h.Raw(`<nav class="mobile-nav"><ul>`)
			for _, item := range NavItems {
				h.Raw(`<li><a`).Attr("href", item.Href).Raw(`>`).Text(i18n.T(ctx, item.Key)).Raw(`</a></li>`)
			}
			h.Raw(`</ul><a href="#contact" class="btn btn-primary">`).Text(i18n.T(ctx, "nav.book")).Raw(`</a></nav>`)
		}
		h.Raw(`</div>`)
		return h.Err()
	})
}
