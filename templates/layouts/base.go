// Package layouts holds the HTML document shell shared by every page.
package layouts

import (
	"context"
	"io"

	"file_bridge_app_go/middleware"
	"file_bridge_app_go/models"
	"file_bridge_app_go/templates/components"

	"github.com/a-h/templ"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

const turnstileSrc = "https://challenges.cloudflare.com/turnstile/v0/api.js"

// Base wraps body in the document shell. Scripts carry the request's CSP
// nonce; the CSRF token is exposed as a meta tag for landing.js.
func Base(seo *models.SEO, turnstile bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		nonce := middleware.GetNonce(ctx)
		h := components.NewHTML(w)

		h.Raw(`<!DOCTYPE html><html`).Attr("lang", seo.Locale).Raw(`><head>`)
		h.Raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw(`<title>`).Text(seo.Title).Raw(`</title>`)
		meta(h, "description", seo.Description)
		if seo.Keywords != "" {
			meta(h, "keywords", seo.Keywords)
		}
		if seo.NoIndex {
			meta(h, "robots", "noindex, nofollow")
		}
		meta(h, "csrf-token", middleware.CSRFTokenFromContext(ctx))

		if seo.Canonical != "" {
			h.Raw(`<link rel="canonical"`).Attr("href", seo.Canonical).Raw(`>`)
			for _, alt := range seo.AltLocales {
				h.Raw(`<link rel="alternate"`).Attr("hreflang", alt).Attr("href", seo.Canonical+"?lang="+alt).Raw(`>`)
			}
		}
		property(h, "og:title", seo.Title)
		property(h, "og:description", seo.Description)
		property(h, "og:type", seo.OGType)
		property(h, "og:locale", seo.Locale)
		if seo.SiteName != "" {
			property(h, "og:site_name", seo.SiteName)
		}
		if seo.Canonical != "" {
			property(h, "og:url", seo.Canonical)
		}
		if seo.OGImage != "" {
			property(h, "og:image", seo.OGImage)
		}
		meta(h, "twitter:card", seo.TwitterCard)

		h.Raw(`<link rel="icon" type="image/svg+xml"`).Attr("href", middleware.AssetURL(ctx, "images/favicon.svg")).Raw(`>`)
		h.Raw(`<link rel="stylesheet"`).Attr("href", middleware.AssetURL(ctx, "css/style.css")).Raw(`>`)
		h.Raw(`<script`).Attr("src", htmxSrc).Attr("nonce", nonce).Raw(` defer></script>`)
		h.Raw(`<script`).Attr("src", middleware.AssetURL(ctx, "js/landing.js")).Attr("nonce", nonce).Raw(` defer></script>`)
		if turnstile {
			h.Raw(`<script`).Attr("src", turnstileSrc).Attr("nonce", nonce).Raw(` async defer></script>`)
		}
		h.Raw(`</head><body>`)
		h.Component(ctx, body)
		h.Raw(`</body></html>`)
		return h.Err()
	})
}

func meta(h *components.HTML, name, content string) {
	h.Raw(`<meta`).Attr("name", name).Attr("content", content).Raw(`>`)
}

func property(h *components.HTML, name, content string) {
	h.Raw(`<meta`).Attr("property", name).Attr("content", content).Raw(`>`)
}
