// Package content holds the marketing copy of the landing page. Page
// variants differ only in their Content value; the rendering code is shared.
package content

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"file_bridge_app_go/services/counter"
)

// Catalog is the full content configuration: every variant by key.
type Catalog struct {
	DefaultVariant string              `yaml:"default_variant"`
	Variants       map[string]*Content `yaml:"variants"`
}

// Content is the copy and data behind one landing page variant.
type Content struct {
	Key           string        `yaml:"-"`
	Brand         Brand         `yaml:"brand"`
	SEO           SEO           `yaml:"seo"`
	Hero          Hero          `yaml:"hero"`
	Stats         []Stat        `yaml:"stats"`
	Features      Section       `yaml:"features"`
	Services      Section       `yaml:"services"`
	CaseStudies   Section       `yaml:"case_studies"`
	Testimonials  Section       `yaml:"testimonials"`
	Contact       Contact       `yaml:"contact"`
	Footer        Footer        `yaml:"footer"`
	FeatureItems  []Feature     `yaml:"feature_items"`
	ServiceTabs   []ServiceTab  `yaml:"service_tabs"`
	Studies       []CaseStudy   `yaml:"studies"`
	Quotes        []Testimonial `yaml:"quotes"`
	BusinessTypes []Option      `yaml:"business_types"`
}

type Brand struct {
	Name    string `yaml:"name"`
	LogoURL string `yaml:"logo_url"`
}

type SEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Keywords    string `yaml:"keywords"`
}

type Hero struct {
	Badge      string   `yaml:"badge"`
	Title      string   `yaml:"title"`
	Subtitle   string   `yaml:"subtitle"`
	CTA        string   `yaml:"cta"`
	Secondary  string   `yaml:"secondary"`
	Highlights []string `yaml:"highlights"`
	ImageURL   string   `yaml:"image_url"`
}

// Stat describes one animated statistic. Format names a counter formatter.
type Stat struct {
	Key    string  `yaml:"key"`
	Label  string  `yaml:"label"`
	Target float64 `yaml:"target"`
	Step   float64 `yaml:"step"`
	Format string  `yaml:"format"`
}

// Section is the badge/heading/intro triple above each page section.
type Section struct {
	Badge   string `yaml:"badge"`
	Heading string `yaml:"heading"`
	Intro   string `yaml:"intro"`
}

type Feature struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// ServiceTab is one entry of the services tab strip.
type ServiceTab struct {
	Key         string   `yaml:"key"`
	Label       string   `yaml:"label"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Points      []string `yaml:"points"`
	ImageURL    string   `yaml:"image_url"`
}

type CaseStudy struct {
	Title     string `yaml:"title"`
	Client    string `yaml:"client"`
	Challenge string `yaml:"challenge"`
	Solution  string `yaml:"solution"`
	Result    string `yaml:"result"`
	ImageURL  string `yaml:"image_url"`
}

type Testimonial struct {
	Quote    string `yaml:"quote"`
	Author   string `yaml:"author"`
	Role     string `yaml:"role"`
	ImageURL string `yaml:"image_url"`
}

type Contact struct {
	Badge        string        `yaml:"badge"`
	Heading      string        `yaml:"heading"`
	Intro        string        `yaml:"intro"`
	Email        string        `yaml:"email"`
	Phone        string        `yaml:"phone"`
	FormTitle    string        `yaml:"form_title"`
	Expectations []Expectation `yaml:"expectations"`
}

type Expectation struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Option is a value/label pair for select inputs.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type Footer struct {
	Tagline string `yaml:"tagline"`
	Links   []Link `yaml:"links"`
	Social  []Link `yaml:"social"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Variant returns the content for key, or the default variant when key is empty.
func (c *Catalog) Variant(key string) (*Content, bool) {
	if key == "" {
		key = c.DefaultVariant
	}
	v, ok := c.Variants[key]
	return v, ok
}

// Default returns the default variant.
func (c *Catalog) Default() *Content {
	return c.Variants[c.DefaultVariant]
}

// SetDefault makes key the default variant.
func (c *Catalog) SetDefault(key string) error {
	if _, ok := c.Variants[key]; !ok {
		return fmt.Errorf("content: variant %q is not defined", key)
	}
	c.DefaultVariant = key
	return nil
}

// Keys returns the variant keys with the default first and the rest sorted.
func (c *Catalog) Keys() []string {
	keys := []string{c.DefaultVariant}
	rest := make([]string, 0, len(c.Variants))
	for k := range c.Variants {
		if k != c.DefaultVariant {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

// Validate checks every variant and reports all problems at once.
func (c *Catalog) Validate() error {
	if len(c.Variants) == 0 {
		return errors.New("content: no variants defined")
	}
	var errs []error
	if _, ok := c.Variants[c.DefaultVariant]; !ok {
		errs = append(errs, fmt.Errorf("content: default variant %q is not defined", c.DefaultVariant))
	}
	for key, v := range c.Variants {
		if v == nil {
			errs = append(errs, fmt.Errorf("content: variant %q is empty", key))
			continue
		}
		if err := v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("variant %q: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks the invariants the page components rely on.
func (c *Content) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Brand.Name) == "" {
		errs = append(errs, errors.New("brand name is required"))
	}
	if len(c.Quotes) == 0 {
		errs = append(errs, errors.New("at least one testimonial is required"))
	}
	for i, s := range c.Stats {
		if s.Key == "" {
			errs = append(errs, fmt.Errorf("stat %d: key is required", i))
		}
		if !finitePositive(s.Target) {
			errs = append(errs, fmt.Errorf("stat %q: target must be positive and finite", s.Key))
		}
		if !finitePositive(s.Step) {
			errs = append(errs, fmt.Errorf("stat %q: step must be positive and finite", s.Key))
		}
		if _, ok := counter.LookupFormatter(s.Format); !ok {
			errs = append(errs, fmt.Errorf("stat %q: unknown format %q", s.Key, s.Format))
		}
	}
	seen := make(map[string]bool, len(c.ServiceTabs))
	for _, tab := range c.ServiceTabs {
		if tab.Key == "" {
			errs = append(errs, errors.New("service tab key is required"))
			continue
		}
		if seen[tab.Key] {
			errs = append(errs, fmt.Errorf("duplicate service tab %q", tab.Key))
		}
		seen[tab.Key] = true
	}
	return errors.Join(errs...)
}

// StatEntries builds counter entries from the configured stats.
// Unknown formats fall back to the counter's plain rendering.
func (c *Content) StatEntries() []counter.StatEntry {
	entries := make([]counter.StatEntry, 0, len(c.Stats))
	for _, s := range c.Stats {
		format, _ := counter.LookupFormatter(s.Format)
		entries = append(entries, counter.StatEntry{
			Key:    s.Key,
			Label:  s.Label,
			Target: s.Target,
			Step:   s.Step,
			Format: format,
		})
	}
	return entries
}

// ServiceTab returns the tab with key.
func (c *Content) ServiceTab(key string) (ServiceTab, bool) {
	for _, tab := range c.ServiceTabs {
		if tab.Key == key {
			return tab, true
		}
	}
	return ServiceTab{}, false
}

// DefaultServiceTab returns the first tab, if any.
func (c *Content) DefaultServiceTab() (ServiceTab, bool) {
	if len(c.ServiceTabs) == 0 {
		return ServiceTab{}, false
	}
	return c.ServiceTabs[0], true
}

// finitePositive reports whether v is a positive finite number.
func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
