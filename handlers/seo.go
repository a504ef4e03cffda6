package handlers

import (
	"strings"

	"file_bridge_app_go/models"
	"file_bridge_app_go/services/content"
	"file_bridge_app_go/services/i18n"
)

const defaultOGImage = "/static/images/og-image.png"

// pageSEO builds the metadata of a variant's landing page. path is the page
// path below the site URL.
func pageSEO(baseURL, path, locale string, c *content.Content) *models.SEO {
	baseURL = strings.TrimRight(baseURL, "/")
	return models.DefaultSEO(c.SEO.Title, c.SEO.Description).
		WithKeywords(c.SEO.Keywords).
		WithCanonical(baseURL+path).
		WithOGImage(baseURL+defaultOGImage).
		WithSiteName(c.Brand.Name).
		WithLocale(locale, i18n.Supported()...)
}
