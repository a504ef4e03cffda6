package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"file_bridge_app_go/services/carousel"
	"file_bridge_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// MenuPartialHandler returns the mobile menu in the state given by ?open=
func MenuPartialHandler(c echo.Context) error {
	open, _ := strconv.ParseBool(c.QueryParam("open"))
	return render(c, http.StatusOK, partials.MobileMenu(open))
}

// ServiceTabPartialHandler returns the service tabs with :tab active
func ServiceTabPartialHandler(c echo.Context) error {
	v, ok := variantParam(c)
	if !ok {
		return unknownVariant(c)
	}
	tab, ok := v.ServiceTab(c.Param("tab"))
	if !ok {
		return respondError(c, http.StatusNotFound, "Unknown service")
	}
	return render(c, http.StatusOK, partials.ServiceTabs(v, tab))
}

// TestimonialPartialHandler returns the testimonial carousel positioned at
// :index, then moved one step when ?move=next or ?move=previous.
func TestimonialPartialHandler(c echo.Context) error {
	v, ok := variantParam(c)
	if !ok {
		return unknownVariant(c)
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid testimonial index")
	}
	car, err := carousel.At(v.Quotes, index)
	if err != nil {
		if errors.Is(err, carousel.ErrIndexOutOfRange) {
			return respondError(c, http.StatusBadRequest, "Testimonial index out of range")
		}
		c.Logger().Errorf("Variant %q has no testimonials: %v", v.Key, err)
		return respondError(c, http.StatusInternalServerError, "Testimonials unavailable")
	}

	switch c.QueryParam("move") {
	case "":
	case "next":
		car.Next()
	case "previous":
		car.Previous()
	default:
		return respondError(c, http.StatusBadRequest, "move must be next or previous")
	}
	return render(c, http.StatusOK, partials.Testimonials(v.Key, car))
}
