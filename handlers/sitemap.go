package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName string       `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// GetSitemapHandler lists the landing page of every variant
func GetSitemapHandler(c echo.Context) error {
	baseURL := strings.TrimRight(appConfig(c).AppURL, "/")
	store := contentStore(c)

	var urls []SitemapURL
	for _, key := range store.Catalog().Keys() {
		u := SitemapURL{Loc: baseURL + variantPath(store, key), ChangeFreq: "weekly", Priority: 0.8}
		if u.Loc == baseURL+"/" {
			u.Priority = 1.0
		}
		urls = append(urls, u)
	}

	urlSet := SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// RobotsHandler allows crawling of the public pages and points at the sitemap
func RobotsHandler(c echo.Context) error {
	baseURL := strings.TrimRight(appConfig(c).AppURL, "/")
	body := "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /admin/\n" +
		"Disallow: /partials/\n" +
		"Disallow: /stats/\n" +
		"\n" +
		"Sitemap: " + baseURL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}
