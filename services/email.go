package services

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"log"
	"strings"
	texttemplate "text/template"

	"file_bridge_app_go/config"
	"file_bridge_app_go/services/i18n"

	"github.com/resend/resend-go/v2"
)

//go:embed emails/*.html emails/*.txt
var emailTemplates embed.FS

// Email represents an email message
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// buildEmail renders templateName for lang, falling back to English when the
// localized template is missing or broken.
func buildEmail(templateName, lang string, data interface{}, toEmail string) *Email {
	htmlBody, textBody, err := loadTemplate(templateName, lang, data)
	if err != nil {
		log.Printf("Error loading %s email template for lang %s: %v", templateName, lang, err)
		if lang != "en" {
			htmlBody, textBody, err = loadTemplate(templateName, "en", data)
			if err != nil {
				log.Printf("Error loading default 'en' template for %s: %v", templateName, err)
			}
		}
	}

	return &Email{
		To:       []string{toEmail},
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// loadTemplate renders emails/<name>_<lang>.html/.txt, falling back to
// emails/<name>.html/.txt (the English base).
func loadTemplate(templateName, lang string, data interface{}) (html string, text string, err error) {
	read := func(ext string) (string, []byte, error) {
		path := fmt.Sprintf("emails/%s_%s%s", templateName, lang, ext)
		content, err := emailTemplates.ReadFile(path)
		if err != nil {
			path = "emails/" + templateName + ext
			content, err = emailTemplates.ReadFile(path)
			if err != nil {
				return path, nil, fmt.Errorf("failed to read template %s: %w", path, err)
			}
		}
		return path, content, nil
	}

	path, content, err := read(".html")
	if err != nil {
		return "", "", err
	}
	htmlTmpl, err := htmltemplate.New(path).Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", path, err)
	}

	path, content, err = read(".txt")
	if err != nil {
		return "", "", err
	}
	textTmpl, err := texttemplate.New(path).Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", path, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("Email logged successfully (test mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}
	if email.ReplyTo != "" {
		params.ReplyTo = email.ReplyTo
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in test mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Test Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email in a goroutine so handlers never block on
// the mail provider.
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Copy to avoid racing with the caller
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		ReplyTo:  email.ReplyTo,
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// ConsultationEmailData contains data for the consultation email templates
type ConsultationEmailData struct {
	BrandName     string
	Name          string
	Email         string
	Phone         string
	BusinessType  string
	PreferredDate string
	Message       string
	ContactEmail  string
	ContactPhone  string
	AdminURL      string
}

// BuildConsultationNotificationEmail tells the firm about a new booking.
func BuildConsultationNotificationEmail(firmEmail string, data ConsultationEmailData, lang string) *Email {
	email := buildEmail("consultation_notification", lang, data, firmEmail)
	email.Subject = i18n.Translate(lang, "email.consultation_notification.subject", map[string]interface{}{"name": data.Name})
	email.ReplyTo = data.Email
	return email
}

// BuildConsultationConfirmationEmail acknowledges a booking to the requester.
func BuildConsultationConfirmationEmail(clientEmail string, data ConsultationEmailData, lang string) *Email {
	email := buildEmail("consultation_confirmation", lang, data, clientEmail)
	email.Subject = i18n.Translate(lang, "email.consultation_confirmation.subject", map[string]interface{}{"brand": data.BrandName})
	return email
}
