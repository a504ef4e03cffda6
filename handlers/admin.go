package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"file_bridge_app_go/db"
	"file_bridge_app_go/middleware"
	"file_bridge_app_go/models"
	"file_bridge_app_go/services"
	"file_bridge_app_go/templates/pages"
	"file_bridge_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// consultationFilter reads ?status= and rejects unknown statuses.
func consultationFilter(c echo.Context) (services.ConsultationFilter, error) {
	status := c.QueryParam("status")
	if status != "" && !models.IsValidConsultationStatus(status) {
		return services.ConsultationFilter{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid status filter")
	}
	return services.ConsultationFilter{
		Status: status,
		Limit:  services.DefaultConsultationPageSize,
	}, nil
}

// AdminConsultationsHandler lists consultation requests, newest first
func AdminConsultationsHandler(c echo.Context) error {
	filter, err := consultationFilter(c)
	if err != nil {
		return err
	}

	requests, err := services.ListConsultationRequests(db.DB, filter)
	if err != nil {
		c.Logger().Errorf("Failed to list consultation requests: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load consultation requests")
	}
	counts, err := services.CountConsultationsByStatus(db.DB)
	if err != nil {
		c.Logger().Errorf("Failed to count consultation requests: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load consultation requests")
	}

	return render(c, http.StatusOK, pages.AdminConsultations(pages.AdminConsultationsView{
		Requests: requests,
		Counts:   counts,
		Status:   filter.Status,
		Now:      time.Now(),
	}))
}

// AdminExportHandler downloads the filtered requests as an Excel workbook
func AdminExportHandler(c echo.Context) error {
	filter, err := consultationFilter(c)
	if err != nil {
		return err
	}
	filter.Limit = -1

	requests, err := services.ListConsultationRequests(db.DB, filter)
	if err != nil {
		c.Logger().Errorf("Failed to list consultation requests: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export consultation requests")
	}

	buf, err := services.ExportConsultationsXLSX(c.Request().Context(), requests)
	if err != nil {
		c.Logger().Errorf("Failed to build consultation export: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export consultation requests")
	}

	err = services.RecordAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionExport,
		ResourceType: models.AuditResourceConsultation,
		Description:  fmt.Sprintf("Exported %d requests", len(requests)),
		NewValues:    map[string]interface{}{"rows": len(requests), "status": filter.Status, "variant": filter.Variant},
	})
	if err != nil {
		c.Logger().Errorf("Failed to record export: %v", err)
	}

	filename := fmt.Sprintf("consultations_%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Stream(http.StatusOK, services.ContentTypeXLSX, buf)
}

// AdminUpdateStatusHandler changes a request's status and returns its row
func AdminUpdateStatusHandler(c echo.Context) error {
	req, err := services.UpdateConsultationStatus(db.DB, c.Param("id"), c.FormValue("status"), time.Now(), middleware.GetAuditContext(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConsultationNotFound):
			return respondError(c, http.StatusNotFound, "Consultation request not found")
		case errors.Is(err, services.ErrInvalidConsultationStatus):
			return respondError(c, http.StatusBadRequest, "Invalid status")
		}
		c.Logger().Errorf("Failed to update consultation %s: %v", c.Param("id"), err)
		return respondError(c, http.StatusInternalServerError, "Failed to update status")
	}

	c.Logger().Infof("Consultation %s marked %s by %v", req.ID, req.Status, c.Get("admin_user"))
	if isHTMX(c) {
		return render(c, http.StatusOK, partials.ConsultationRow(*req, time.Now()))
	}
	return c.Redirect(http.StatusSeeOther, "/admin/consultations")
}
