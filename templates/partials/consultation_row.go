package partials

import (
	"context"
	"io"
	"time"

	"file_bridge_app_go/middleware"
	"file_bridge_app_go/models"
	"file_bridge_app_go/services/i18n"
	"file_bridge_app_go/templates/components"

	"github.com/a-h/templ"
)

// ConsultationStatuses is the order statuses are offered in.
var ConsultationStatuses = []string{
	models.ConsultationStatusNew,
	models.ConsultationStatusContacted,
	models.ConsultationStatusClosed,
}

// ConsultationRow is one admin table row with its inline status form.
// Submitting the form swaps the row for the updated one.
func ConsultationRow(req models.ConsultationRequest, now time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<tr`).Attr("id", "consultation-"+req.ID).Attr("data-status", req.Status).Raw(`>`)
		h.Raw(`<td><time`).Attr("datetime", req.CreatedAt.UTC().Format(time.RFC3339)).Raw(`>`).
			Text(formatRelativeTime(req.CreatedAt, now)).Raw(`</time></td>`)
		h.Raw(`<td>`).Text(req.Name).Raw(`</td>`)
		h.Raw(`<td><a`).Attr("href", "mailto:"+req.Email).Raw(`>`).Text(req.Email).Raw(`</a></td>`)
		h.Raw(`<td>`).Text(req.Phone).Raw(`</td>`)
		h.Raw(`<td>`).Text(req.BusinessType).Raw(`</td>`)
		h.Raw(`<td>`)
		if req.PreferredDate != nil {
			h.Text(req.PreferredDate.Format("2006-01-02"))
		}
		h.Raw(`</td><td class="message">`).Text(req.Message).Raw(`</td>`)
		h.Raw(`<td>`).Text(req.Variant).Raw(`</td>`)

		h.Raw(`<td><form method="post"`).
			Attr("action", "/admin/consultations/"+req.ID+"/status").
			Attr("hx-post", "/admin/consultations/"+req.ID+"/status").
			Attr("hx-target", "closest tr").
			Attr("hx-swap", "outerHTML").
			Raw(`>`)
		h.Raw(`<input type="hidden" name="_csrf"`).Attr("value", middleware.CSRFTokenFromContext(ctx)).Raw(`>`)
		h.Raw(`<select name="status">`)
		for _, s := range ConsultationStatuses {
			h.Raw(`<option`).Attr("value", s).AttrIf(s == req.Status, "selected").Raw(`>`).
				Text(i18n.T(ctx, "admin.status."+s)).Raw(`</option>`)
		}
		h.Raw(`</select><button type="submit">`).Text(i18n.T(ctx, "admin.update")).Raw(`</button></form></td></tr>`)
		return h.Err()
	})
}
