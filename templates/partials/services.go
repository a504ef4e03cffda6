package partials

import (
	"context"
	"io"

	"file_bridge_app_go/services/content"
	"file_bridge_app_go/templates/components"

	"github.com/a-h/templ"
)

// ServiceTabs renders the tab strip with active highlighted and its panel
// below. Every tab button swaps the whole block.
func ServiceTabs(c *content.Content, active content.ServiceTab) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(w)
		h.Raw(`<div id="service-tabs" class="service-tabs"><div class="tab-list" role="tablist">`)
		for _, tab := range c.ServiceTabs {
			selected := tab.Key == active.Key
			h.Raw(`<button type="button" role="tab"`).
				Attr("id", "tab-"+tab.Key).
				Attr("hx-get", "/partials/services/"+tab.Key+"?"+variantQuery(c.Key)).
				Attr("hx-target", "#service-tabs").
				Attr("hx-swap", "outerHTML")
			if selected {
				h.Attr("class", "tab active").Attr("aria-selected", "true")
			} else {
				h.Attr("class", "tab").Attr("aria-selected", "false")
			}
			h.Raw(`>`).Text(tab.Label).Raw(`</button>`)
		}
		h.Raw(`</div>`)

		h.Raw(`<div class="tab-panel" role="tabpanel"`).Attr("aria-labelledby", "tab-"+active.Key).Raw(`>`)
		h.Raw(`<div class="tab-copy"><h3>`).Text(active.Title).Raw(`</h3>`)
		h.Raw(`<p>`).Text(active.Description).Raw(`</p><ul class="checklist">`)
		for _, point := range active.Points {
			h.Raw(`<li>`).Text(point).Raw(`</li>`)
		}
		h.Raw(`</ul></div>`)
		if active.ImageURL != "" {
			h.Raw(`<img loading="lazy"`).Attr("src", active.ImageURL).Attr("alt", active.Title).Raw(`>`)
		}
		h.Raw(`</div></div>`)
		return h.Err()
	})
}
