package partials

import (
	"context"
	"io"

	"file_bridge_app_go/middleware"
	"file_bridge_app_go/services/content"
	"file_bridge_app_go/services/i18n"
	"file_bridge_app_go/templates/components"

	"github.com/a-h/templ"
)

// ConsultationForm is the state of the booking form: what the visitor typed
// and what was wrong with it.
type ConsultationForm struct {
	Variant          string
	TurnstileSiteKey string
	Values           map[string]string
	Errors           map[string]string
	// Message is a form-level error shown above the fields
	Message string
}

func (f ConsultationForm) value(name string) string {
	return f.Values[name]
}

// BookingForm renders the consultation form. It posts to itself and the
// response replaces it: either the form again with errors, or the success note.
func BookingForm(c *content.Content, form ConsultationForm) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<form id="consultation-form" class="consultation-form" method="post" action="/consultations"`).
			Attr("hx-post", "/consultations").
			Attr("hx-target", "#consultation-form").
			Attr("hx-swap", "outerHTML").
			Raw(`>`)
		h.Raw(`<h3>`).Text(c.Contact.FormTitle).Raw(`</h3>`)
		if form.Message != "" {
			h.Component(ctx, FormError(form.Message))
		}
		h.Raw(`<input type="hidden" name="_csrf"`).Attr("value", middleware.CSRFTokenFromContext(ctx)).Raw(`>`)
		h.Raw(`<input type="hidden" name="variant"`).Attr("value", form.Variant).Raw(`>`)

		h.Raw(`<div class="form-row">`)
		input(ctx, h, form, "name", "text", "form.name", true)
		input(ctx, h, form, "email", "email", "form.email", true)
		h.Raw(`</div><div class="form-row">`)
		input(ctx, h, form, "phone", "tel", "form.phone", false)

		h.Raw(`<label class="field">`).Text(i18n.T(ctx, "form.business_type"))
		h.Raw(`<select name="business_type" required><option value="">`).
			Text(i18n.T(ctx, "form.business_type_placeholder")).Raw(`</option>`)
		for _, opt := range c.BusinessTypes {
			h.Raw(`<option`).Attr("value", opt.Value).AttrIf(opt.Value == form.value("business_type"), "selected").
				Raw(`>`).Text(opt.Label).Raw(`</option>`)
		}
		h.Raw(`</select>`)
		fieldError(h, form, "business_type")
		h.Raw(`</label></div>`)

		input(ctx, h, form, "preferred_date", "date", "form.date", false)

		h.Raw(`<label class="field">`).Text(i18n.T(ctx, "form.message"))
		h.Raw(`<textarea name="message" rows="4" maxlength="2000">`).Text(form.value("message")).Raw(`</textarea>`)
		fieldError(h, form, "message")
		h.Raw(`</label>`)

		if form.TurnstileSiteKey != "" {
			h.Raw(`<div class="cf-turnstile"`).Attr("data-sitekey", form.TurnstileSiteKey).Raw(`></div>`)
		}
		h.Raw(`<button type="submit" class="btn btn-primary btn-block">`).Text(i18n.T(ctx, "form.submit")).Raw(`</button>`)
		h.Raw(`<p class="form-note">`).Text(i18n.T(ctx, "form.privacy")).Raw(`</p></form>`)
		return h.Err()
	})
}

func input(ctx context.Context, h *components.HTML, form ConsultationForm, name, typ, labelKey string, required bool) {
	h.Raw(`<label class="field">`).Text(i18n.T(ctx, labelKey))
	h.Raw(`<input`).Attr("type", typ).Attr("name", name).Attr("value", form.value(name)).AttrIf(required, "required")
	if _, bad := form.Errors[name]; bad {
		h.Attr("aria-invalid", "true")
	}
	h.Raw(`>`)
	fieldError(h, form, name)
	h.Raw(`</label>`)
}

func fieldError(h *components.HTML, form ConsultationForm, name string) {
	if msg, ok := form.Errors[name]; ok {
		h.Raw(`<span class="field-error">`).Text(msg).Raw(`</span>`)
	}
}

// BookingSuccess replaces the form once a request was stored.
func BookingSuccess() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<div id="consultation-form" class="form-success" role="status"><h3>`).
			Text(i18n.T(ctx, "form.success_title")).Raw(`</h3><p>`).
			Text(i18n.T(ctx, "form.success")).Raw(`</p></div>`)
		return h.Err()
	})
}

// FormError is the error banner used inside forms and for HTMX error responses.
func FormError(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return components.NewHTML(w).Raw(`<div class="error-message" role="alert">`).Text(message).Raw(`</div>`).Err()
	})
}
