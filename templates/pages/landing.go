package pages

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"file_bridge_app_go/middleware"
	"file_bridge_app_go/models"
	"file_bridge_app_go/services/carousel"
	"file_bridge_app_go/services/content"
	"file_bridge_app_go/services/i18n"
	"file_bridge_app_go/templates/components"
	"file_bridge_app_go/templates/layouts"
	"file_bridge_app_go/templates/partials"

	"github.com/a-h/templ"
)

// LandingPage is everything the landing page needs besides the request context.
type LandingPage struct {
	Content          *content.Content
	SEO              *models.SEO
	TurnstileSiteKey string
	Year             int
}

// Landing renders one page variant. The stats are rendered at zero and
// animated by the stream landing.js opens from data-stream.
func Landing(page LandingPage) (templ.Component, error) {
	testimonials, err := carousel.New(page.Content.Quotes)
	if err != nil {
		return nil, err
	}
	if page.Year == 0 {
		page.Year = time.Now().Year()
	}
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		c := page.Content
		h := components.NewHTML(w)

		header(ctx, h, c)
		h.Raw(`<main>`)
		hero(h, c)
		stats(ctx, h, c)
		features(h, c)

		h.Raw(`<section id="services" class="section section-alt">`)
		sectionHeading(h, c.Services)
		if tab, ok := c.DefaultServiceTab(); ok {
			h.Component(ctx, partials.ServiceTabs(c, tab))
		}
		h.Raw(`</section>`)

		caseStudies(ctx, h, c)

		h.Raw(`<section id="testimonials" class="section section-alt">`)
		sectionHeading(h, c.Testimonials)
		h.Component(ctx, partials.Testimonials(c.Key, testimonials))
		h.Raw(`</section>`)

		contact(ctx, h, page)
		h.Raw(`</main>`)
		footer(ctx, h, c, page.Year)
		structuredData(ctx, h, page)
		return h.Err()
	})
	return layouts.Base(page.SEO, page.TurnstileSiteKey != "", body), nil
}

func header(ctx context.Context, h *components.HTML, c *content.Content) {
	h.Raw(`<header class="site-header"><div class="container header-inner">`)
	h.Raw(`<a href="#" class="brand">`)
	if c.Brand.LogoURL != "" {
		h.Raw(`<img class="logo"`).Attr("src", c.Brand.LogoURL).Attr("alt", c.Brand.Name).Raw(`>`)
	}
	h.Raw(`<span>`).Text(c.Brand.Name).Raw(`</span></a>`)

	h.Raw(`<nav class="desktop-nav"><ul>`)
	for _, item := range partials.NavItems {
		h.Raw(`<li><a`).Attr("href", item.Href).Raw(`>`).Text(i18n.T(ctx, item.Key)).Raw(`</a></li>`)
	}
	h.Raw(`</ul></nav>`)

	if alt := otherLocale(i18n.GetLocale(ctx)); alt != "" {
		h.Raw(`<a class="lang-switch"`).Attr("href", "?lang="+alt).Attr("hreflang", alt).Raw(`>`).
			Text(i18n.T(ctx, "nav.language")).Raw(`</a>`)
	}
	h.Raw(`<a href="#contact" class="btn btn-primary header-cta">`).Text(i18n.T(ctx, "nav.book")).Raw(`</a>`)
	h.Component(ctx, partials.MobileMenu(false))
	h.Raw(`</div></header>`)
}

func otherLocale(current string) string {
	for _, l := range i18n.Supported() {
		if l != current {
			return l
		}
	}
	return ""
}

func hero(h *components.HTML, c *content.Content) {
	h.Raw(`<section id="hero" class="hero"><div class="container hero-inner"><div class="hero-copy">`)
	h.Raw(`<span class="badge">`).Text(c.Hero.Badge).Raw(`</span>`)
	h.Raw(`<h1>`).Text(c.Hero.Title).Raw(`</h1>`)
	h.Raw(`<p class="lead">`).Text(c.Hero.Subtitle).Raw(`</p>`)
	h.Raw(`<div class="hero-actions"><a href="#contact" class="btn btn-primary">`).Text(c.Hero.CTA).
		Raw(`</a><a href="#services" class="btn btn-outline">`).Text(c.Hero.Secondary).Raw(`</a></div>`)
	h.Raw(`<ul class="highlights">`)
	for _, hl := range c.Hero.Highlights {
		h.Raw(`<li>`).Text(hl).Raw(`</li>`)
	}
	h.Raw(`</ul></div>`)
	if c.Hero.ImageURL != "" {
		h.Raw(`<img class="hero-image"`).Attr("src", c.Hero.ImageURL).Attr("alt", c.Hero.Title).Raw(`>`)
	}
	h.Raw(`</div></section>`)
}

func stats(ctx context.Context, h *components.HTML, c *content.Content) {
	entries := c.StatEntries()
	h.Raw(`<section id="stats" class="stats"`).
		Attr("aria-label", i18n.T(ctx, "stats.heading")).
		Attr("data-stream", "/stats/stream?variant="+url.QueryEscape(c.Key)).
		Raw(`><div class="container stats-grid">`)
	for i := range entries {
		e := &entries[i]
		h.Raw(`<div class="stat"><span class="stat-value"`).
			Attr("data-stat-key", e.Key).
			Raw(`>`).Text(e.Display()).Raw(`</span><span class="stat-label">`).Text(e.Label).Raw(`</span></div>`)
	}
	h.Raw(`</div></section>`)
}

func features(h *components.HTML, c *content.Content) {
	h.Raw(`<section id="why-choose-us" class="section">`)
	sectionHeading(h, c.Features)
	h.Raw(`<div class="container card-grid">`)
	for _, f := range c.FeatureItems {
		h.Raw(`<article class="card"`).Attr("data-icon", f.Icon).Raw(`><h3>`).Text(f.Title).
			Raw(`</h3><p>`).Text(f.Description).Raw(`</p></article>`)
	}
	h.Raw(`</div></section>`)
}

func caseStudies(ctx context.Context, h *components.HTML, c *content.Content) {
	h.Raw(`<section id="case-studies" class="section">`)
	sectionHeading(h, c.CaseStudies)
	h.Raw(`<div class="container card-grid">`)
	for _, s := range c.Studies {
		h.Raw(`<article class="card case-study">`)
		if s.ImageURL != "" {
			h.Raw(`<img loading="lazy"`).Attr("src", s.ImageURL).Attr("alt", s.Title).Raw(`>`)
		}
		h.Raw(`<h3>`).Text(s.Title).Raw(`</h3><p class="client">`).Text(s.Client).Raw(`</p><dl>`)
		h.Raw(`<dt>`).Text(i18n.T(ctx, "case.challenge")).Raw(`</dt><dd>`).Text(s.Challenge).Raw(`</dd>`)
		h.Raw(`<dt>`).Text(i18n.T(ctx, "case.solution")).Raw(`</dt><dd>`).Text(s.Solution).Raw(`</dd>`)
		h.Raw(`<dt>`).Text(i18n.T(ctx, "case.result")).Raw(`</dt><dd class="result">`).Text(s.Result).Raw(`</dd>`)
		h.Raw(`</dl></article>`)
	}
	h.Raw(`</div></section>`)
}

func contact(ctx context.Context, h *components.HTML, page LandingPage) {
	c := page.Content
	h.Raw(`<section id="contact" class="section section-alt">`)
	sectionHeading(h, content.Section{Badge: c.Contact.Badge, Heading: c.Contact.Heading, Intro: c.Contact.Intro})
	h.Raw(`<div class="container contact-grid"><div class="contact-info">`)
	h.Raw(`<p><strong>`).Text(i18n.T(ctx, "contact.email")).Raw(`</strong> <a`).
		Attr("href", "mailto:"+c.Contact.Email).Raw(`>`).Text(c.Contact.Email).Raw(`</a></p>`)
	h.Raw(`<p><strong>`).Text(i18n.T(ctx, "contact.call")).Raw(`</strong> <a`).
		Attr("href", "tel:"+c.Contact.Phone).Raw(`>`).Text(c.Contact.Phone).Raw(`</a></p>`)
	h.Raw(`<h3>`).Text(i18n.T(ctx, "contact.expect")).Raw(`</h3><ol class="expectations">`)
	for _, e := range c.Contact.Expectations {
		h.Raw(`<li><strong>`).Text(e.Title).Raw(`</strong><span>`).Text(e.Description).Raw(`</span></li>`)
	}
	h.Raw(`</ol></div>`)
	h.Component(ctx, partials.BookingForm(c, partials.ConsultationForm{
		Variant:          c.Key,
		TurnstileSiteKey: page.TurnstileSiteKey,
	}))
	h.Raw(`</div></section>`)
}

func footer(ctx context.Context, h *components.HTML, c *content.Content, year int) {
	h.Raw(`<footer class="site-footer"><div class="container footer-grid">`)
	h.Raw(`<div><strong>`).Text(c.Brand.Name).Raw(`</strong><p>`).Text(c.Footer.Tagline).Raw(`</p><ul class="social">`)
	for _, l := range c.Footer.Social {
		h.Raw(`<li><a rel="noopener" target="_blank"`).Attr("href", l.URL).Raw(`>`).Text(l.Label).Raw(`</a></li>`)
	}
	h.Raw(`</ul></div>`)

	h.Raw(`<div><h4>`).Text(i18n.T(ctx, "footer.quick_links")).Raw(`</h4><ul>`)
	for _, l := range c.Footer.Links {
		h.Raw(`<li><a`).Attr("href", l.URL).Raw(`>`).Text(l.Label).Raw(`</a></li>`)
	}
	h.Raw(`</ul></div>`)

	h.Raw(`<div><h4>`).Text(i18n.T(ctx, "footer.contact")).Raw(`</h4><p>`).Text(c.Contact.Email).
		Raw(`</p><p>`).Text(c.Contact.Phone).Raw(`</p></div></div>`)

	h.Raw(`<div class="container footer-bottom"><p>&copy; `).Text(strconv.Itoa(year)).Raw(` `).Text(c.Brand.Name).
		Raw(`. `).Text(i18n.T(ctx, "footer.rights")).Raw(`</p><p><a href="#">`).Text(i18n.T(ctx, "footer.privacy")).
		Raw(`</a> <a href="#">`).Text(i18n.T(ctx, "footer.terms")).Raw(`</a></p></div></footer>`)
}

// structuredData emits schema.org JSON-LD describing the business.
func structuredData(ctx context.Context, h *components.HTML, page LandingPage) {
	c := page.Content
	org := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "ProfessionalService",
		"name":        c.Brand.Name,
		"description": c.SEO.Description,
		"email":       c.Contact.Email,
		"telephone":   c.Contact.Phone,
	}
	if page.SEO != nil && page.SEO.Canonical != "" {
		org["url"] = page.SEO.Canonical
	}
	var sameAs []string
	for _, l := range c.Footer.Social {
		sameAs = append(sameAs, l.URL)
	}
	if len(sameAs) > 0 {
		org["sameAs"] = sameAs
	}
	h.Raw(`<script type="application/ld+json"`).Attr("nonce", middleware.GetNonce(ctx)).Raw(`>`).
		Raw(components.JSON(org)).Raw(`</script>`)
}

func sectionHeading(h *components.HTML, s content.Section) {
	h.Raw(`<div class="container section-heading">`)
	if s.Badge != "" {
		h.Raw(`<span class="badge">`).Text(s.Badge).Raw(`</span>`)
	}
	h.Raw(`<h2>`).Text(s.Heading).Raw(`</h2>`)
	if s.Intro != "" {
		h.Raw(`<p>`).Text(s.Intro).Raw(`</p>`)
	}
	h.Raw(`</div>`)
}
