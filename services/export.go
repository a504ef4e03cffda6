package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"file_bridge_app_go/models"
	"file_bridge_app_go/services/i18n"

	"github.com/xuri/excelize/v2"
)

const consultationSheet = "Consultations"

var consultationColumns = []string{
	"ID", "Received", "Name", "Email", "Phone", "Business Type",
	"Preferred Date", "Message", "Status", "Variant", "Contacted At",
}

// ExportConsultationsXLSX writes requests to a single-sheet workbook.
// Status labels are translated for the locale in ctx.
func ExportConsultationsXLSX(ctx context.Context, requests []models.ConsultationRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", consultationSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, header := range consultationColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(consultationSheet, cell, header)
	}

	for r, req := range requests {
		row := []interface{}{
			req.ID,
			req.CreatedAt.UTC().Format(time.RFC3339),
			req.Name,
			req.Email,
			req.Phone,
			req.BusinessType,
			formatOptionalDate(req.PreferredDate, "2006-01-02"),
			req.Message,
			i18n.T(ctx, "admin.status."+req.Status),
			req.Variant,
			formatOptionalDate(req.ContactedAt, time.RFC3339),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(consultationSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastHeader, _ := excelize.CoordinatesToCellName(len(consultationColumns), 1)
	f.SetCellStyle(consultationSheet, "A1", lastHeader, headerStyle)
	f.SetColWidth(consultationSheet, "C", "D", 28)
	f.SetColWidth(consultationSheet, "H", "H", 60)
	f.SetPanes(consultationSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// ExportLinkExpiry is how long a presigned export link stays valid.
const ExportLinkExpiry = 24 * time.Hour

// ArchiveConsultationsExport uploads an export workbook to storage and
// returns where it was stored. Without a public URL the result carries a
// presigned link instead.
func ArchiveConsultationsExport(ctx context.Context, storage StorageProvider, buf *bytes.Buffer, now time.Time) (*StorageResult, error) {
	if storage == nil || !storage.IsConfigured() {
		return nil, fmt.Errorf("storage is not configured")
	}
	key := GenerateExportKey(now)
	size := int64(buf.Len())
	result, err := storage.UploadReader(ctx, buf, key, ContentTypeXLSX, size)
	if err != nil {
		return nil, fmt.Errorf("failed to archive export: %w", err)
	}
	if result.URL == "" {
		signed, err := storage.GetSignedURL(ctx, key, ExportLinkExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to sign export link: %w", err)
		}
		result.URL = signed
	}
	return result, nil
}

func formatOptionalDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
