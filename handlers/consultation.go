package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"file_bridge_app_go/config"
	"file_bridge_app_go/db"
	"file_bridge_app_go/middleware"
	"file_bridge_app_go/models"
	"file_bridge_app_go/services"
	"file_bridge_app_go/services/content"
	"file_bridge_app_go/services/i18n"
	"file_bridge_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

var consultationFields = []string{"name", "email", "phone", "business_type", "preferred_date", "message"}

// CreateConsultationHandler stores a booking form submission and sends the
// notification and confirmation emails.
func CreateConsultationHandler(c echo.Context) error {
	cfg := appConfig(c)
	store := contentStore(c)
	ctx := c.Request().Context()

	v, ok := store.Variant(c.FormValue("variant"))
	if !ok {
		v = store.Default()
	}

	form := partials.ConsultationForm{
		Variant:          v.Key,
		TurnstileSiteKey: cfg.TurnstileSiteKey,
		Values:           make(map[string]string, len(consultationFields)),
	}
	for _, name := range consultationFields {
		form.Values[name] = c.FormValue(name)
	}

	if cfg.TurnstileSecretKey != "" {
		err := services.NewTurnstileVerifier(cfg).Verify(ctx, c.FormValue("cf-turnstile-response"), c.RealIP())
		switch {
		case err == nil:
		case services.IsTurnstileRejection(err):
			c.Logger().Warnf("Turnstile rejected submission from %s: %v", c.RealIP(), err)
			form.Message = i18n.T(ctx, "form.errors.captcha")
			return formResponse(c, http.StatusBadRequest, v, form)
		default:
			c.Logger().Errorf("Turnstile verification unavailable: %v", err)
			form.Message = i18n.T(ctx, "form.errors.captcha_unavailable")
			return formResponse(c, http.StatusServiceUnavailable, v, form)
		}
	}

	req, err := services.CreateConsultationRequest(db.DB, services.ConsultationInput{
		Name:          form.Values["name"],
		Email:         form.Values["email"],
		Phone:         form.Values["phone"],
		BusinessType:  form.Values["business_type"],
		PreferredDate: form.Values["preferred_date"],
		Message:       form.Values["message"],
		Variant:       v.Key,
		IPAddress:     c.RealIP(),
		UserAgent:     c.Request().UserAgent(),
	}, time.Now())
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			form.Errors = verr.Fields
			return formResponse(c, http.StatusUnprocessableEntity, v, form)
		}
		c.Logger().Errorf("Failed to store consultation request: %v", err)
		form.Message = i18n.T(ctx, "form.errors.generic")
		return formResponse(c, http.StatusInternalServerError, v, form)
	}

	sendConsultationEmails(cfg, v, req, middleware.GetLocale(c))

	if isHTMX(c) {
		return render(c, http.StatusOK, partials.BookingSuccess())
	}
	return c.Redirect(http.StatusSeeOther, variantPath(store, v.Key)+"#contact")
}

// formResponse re-renders the form for HTMX and fails plain posts with the
// form-level or field errors.
func formResponse(c echo.Context, code int, v *content.Content, form partials.ConsultationForm) error {
	if isHTMX(c) {
		return render(c, code, partials.BookingForm(v, form))
	}
	if form.Message != "" {
		return echo.NewHTTPError(code, form.Message)
	}
	return echo.NewHTTPError(code, (&services.ValidationError{Fields: form.Errors}).Error())
}

func sendConsultationEmails(cfg *config.Config, v *content.Content, req *models.ConsultationRequest, lang string) {
	data := services.ConsultationEmailData{
		BrandName:    v.Brand.Name,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		BusinessType: req.BusinessType,
		Message:      req.Message,
		ContactEmail: v.Contact.Email,
		ContactPhone: v.Contact.Phone,
		AdminURL:     strings.TrimRight(cfg.AppURL, "/") + "/admin/consultations",
	}
	if req.PreferredDate != nil {
		data.PreferredDate = req.PreferredDate.Format("2006-01-02")
	}

	notify := cfg.NotifyEmail
	if notify == "" {
		notify = v.Contact.Email
	}
	services.SendEmailAsync(cfg, services.BuildConsultationNotificationEmail(notify, data, "en"))
	services.SendEmailAsync(cfg, services.BuildConsultationConfirmationEmail(req.Email, data, lang))
}
