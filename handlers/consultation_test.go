package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"file_bridge_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConsultationForm() url.Values {
	return url.Values{
		"name":           {"Maria Lopez"},
		"email":          {"maria@example.com"},
		"phone":          {"+1 (555) 010-2000"},
		"business_type":  {"small-business"},
		"preferred_date": {time.Now().AddDate(0, 0, 7).Format("2006-01-02")},
		"message":        {"<b>Need help</b> with quarterly filings"},
		"variant":        {"bridgeglobal"},
	}
}

func TestCreateConsultationHandlerHTMX(t *testing.T) {
	testDB := setupTestDB(t)
	env := newTestEnv(t)

	c, rec := env.postForm("/consultations", validConsultationForm(), true)
	require.NoError(t, CreateConsultationHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="form-success"`)

	var stored models.ConsultationRequest
	require.NoError(t, testDB.First(&stored).Error)
	assert.Equal(t, "Maria Lopez", stored.Name)
	assert.Equal(t, "bridgeglobal", stored.Variant)
	assert.Equal(t, "Need help with quarterly filings", stored.Message)
	assert.Equal(t, models.ConsultationStatusNew, stored.Status)
	require.NotNil(t, stored.PreferredDate)
}

func TestCreateConsultationHandlerPlainPostRedirects(t *testing.T) {
	setupTestDB(t)
	env := newTestEnv(t)

	c, rec := env.postForm("/consultations", validConsultationForm(), false)
	require.NoError(t, CreateConsultationHandler(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/v/bridgeglobal#contact", rec.Header().Get("Location"))
}

func TestCreateConsultationHandlerValidation(t *testing.T) {
	testDB := setupTestDB(t)
	env := newTestEnv(t)

	form := validConsultationForm()
	form.Set("email", "not-an-email")
	form.Set("business_type", "conglomerate")

	c, rec := env.postForm("/consultations", form, true)
	require.NoError(t, CreateConsultationHandler(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "email address is invalid")
	assert.Contains(t, body, "business type is invalid")
	assert.Contains(t, body, `value="Maria Lopez"`)

	c, _ = env.postForm("/consultations", form, false)
	requireHTTPError(t, CreateConsultationHandler(c), http.StatusUnprocessableEntity)

	var count int64
	testDB.Model(&models.ConsultationRequest{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateConsultationHandlerRequiresCaptcha(t *testing.T) {
	testDB := setupTestDB(t)
	env := newTestEnv(t)
	env.cfg.TurnstileSecretKey = "secret"

	c, rec := env.postForm("/consultations", validConsultationForm(), true)
	require.NoError(t, CreateConsultationHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please complete the verification challenge.")

	var count int64
	testDB.Model(&models.ConsultationRequest{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateConsultationHandlerTurnstileOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		reply    func(w http.ResponseWriter)
		wantCode int
		wantBody string
		stored   int64
	}{
		{
			name: "token accepted",
			reply: func(w http.ResponseWriter) {
				w.Write([]byte(`{"success":true}`))
			},
			wantCode: http.StatusOK,
			wantBody: `class="form-success"`,
			stored:   1,
		},
		{
			name: "token refused",
			reply: func(w http.ResponseWriter) {
				w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
			},
			wantCode: http.StatusBadRequest,
			wantBody: "Please complete the verification challenge.",
		},
		{
			name: "verification endpoint down",
			reply: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantCode: http.StatusServiceUnavailable,
			wantBody: "We could not verify the challenge right now.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB := setupTestDB(t)
			env := newTestEnv(t)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				tt.reply(w)
			}))
			defer server.Close()
			env.cfg.TurnstileSecretKey = "secret"
			env.cfg.TurnstileVerifyURL = server.URL

			form := validConsultationForm()
			form.Set("cf-turnstile-response", "token")
			c, rec := env.postForm("/consultations", form, true)
			require.NoError(t, CreateConsultationHandler(c))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			var count int64
			testDB.Model(&models.ConsultationRequest{}).Count(&count)
			assert.Equal(t, tt.stored, count)
		})
	}
}

func TestCreateConsultationHandlerUnknownVariantFallsBack(t *testing.T) {
	testDB := setupTestDB(t)
	env := newTestEnv(t)

	form := validConsultationForm()
	form.Set("variant", "retired")
	c, _ := env.postForm("/consultations", form, true)
	require.NoError(t, CreateConsultationHandler(c))

	var stored models.ConsultationRequest
	require.NoError(t, testDB.First(&stored).Error)
	assert.Equal(t, "filebridge", stored.Variant)
}
