package counter

// Measurement is one scroll or resize observation of the watched region,
// in viewport coordinates.
type Measurement struct {
	Top            float64 `json:"top"`
	Bottom         float64 `json:"bottom"`
	ViewportHeight float64 `json:"viewport_height"`
}

// Visible reports whether the region overlaps the viewport at all: its top
// edge is above the bottom of the viewport and its bottom edge is below the
// top of it.
func (m Measurement) Visible() bool {
	return m.Top < m.ViewportHeight && m.Bottom > 0
}
