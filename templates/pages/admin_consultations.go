package pages

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"file_bridge_app_go/models"
	"file_bridge_app_go/services/i18n"
	"file_bridge_app_go/templates/components"
	"file_bridge_app_go/templates/layouts"
	"file_bridge_app_go/templates/partials"

	"github.com/a-h/templ"
)

// AdminConsultationsView holds the data for the consultation inbox
type AdminConsultationsView struct {
	Requests []models.ConsultationRequest
	Counts   map[string]int64
	// Status is the active filter; empty lists every status
	Status string
	Now    time.Time
}

// AdminConsultations renders the consultation inbox.
func AdminConsultations(view AdminConsultationsView) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<main class="admin container"><header class="admin-header"><h1>`).
			Text(i18n.T(ctx, "admin.title")).Raw(`</h1>`)

		export := "/admin/consultations/export.xlsx"
		if view.Status != "" {
			export += "?status=" + url.QueryEscape(view.Status)
		}
		h.Raw(`<a class="btn btn-primary"`).Attr("href", export).Raw(`>`).Text(i18n.T(ctx, "admin.export")).Raw(`</a></header>`)

		h.Raw(`<nav class="status-filter">`)
		filterLink(h, "/admin/consultations", i18n.T(ctx, "admin.filter_all"), total(view.Counts), view.Status == "")
		for _, s := range partials.ConsultationStatuses {
			filterLink(h, "/admin/consultations?status="+s, i18n.T(ctx, "admin.status."+s), view.Counts[s], view.Status == s)
		}
		h.Raw(`</nav>`)

		if len(view.Requests) == 0 {
			h.Raw(`<p class="empty">`).Text(i18n.T(ctx, "admin.empty")).Raw(`</p></main>`)
			return h.Err()
		}

		h.Raw(`<table class="admin-table"><thead><tr>`)
		for _, key := range []string{"admin.received", "form.name", "form.email", "form.phone", "form.business_type", "form.date", "form.message"} {
			h.Raw(`<th>`).Text(i18n.T(ctx, key)).Raw(`</th>`)
		}
		h.Raw(`<th>`).Text(i18n.T(ctx, "admin.variant")).Raw(`</th><th>`).Text(i18n.T(ctx, "admin.status_column")).Raw(`</th></tr></thead><tbody>`)
		for _, req := range view.Requests {
			h.Component(ctx, partials.ConsultationRow(req, view.Now))
		}
		h.Raw(`</tbody></table></main>`)
		return h.Err()
	})

	seo := models.DefaultSEO("Consultation Requests", "").WithNoIndex()
	return layouts.Base(seo, false, body)
}

func filterLink(h *components.HTML, href, label string, count int64, active bool) {
	h.Raw(`<a`).Attr("href", href)
	if active {
		h.Attr("class", "active").Attr("aria-current", "page")
	}
	h.Raw(`>`).Text(label).Raw(` <span class="count">`).Text(strconv.FormatInt(count, 10)).Raw(`</span></a>`)
}

func total(counts map[string]int64) int64 {
	var n int64
	for _, c := range counts {
		n += c
	}
	return n
}
