package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"file_bridge_app_go/config"
	"file_bridge_app_go/db"
	"file_bridge_app_go/models"
	"file_bridge_app_go/services"

	"github.com/spf13/cobra"
)

func newConsultationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consultations",
		Short: "Work with stored consultation requests",
	}
	cmd.AddCommand(newConsultationsExportCmd(), newConsultationsStatusCmd(), newConsultationsHistoryCmd())
	return cmd
}

// openDB loads the configuration and opens the migrated database.
func openDB() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		Environment: cfg.Environment,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
	}); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.ConsultationRequest{}, &models.AuditLog{}); err != nil {
		db.Close()
		return nil, err
	}
	return cfg, nil
}

func newConsultationsExportCmd() *cobra.Command {
	var (
		out     string
		status  string
		variant string
		days    int
		archive bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export consultation requests to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !models.IsValidConsultationStatus(status) {
				return fmt.Errorf("unknown status %q", status)
			}
			if out == "" && !archive {
				return fmt.Errorf("nothing to do: pass --out, --archive or both")
			}

			cfg, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			now := time.Now()
			filter := services.ConsultationFilter{Status: status, Variant: variant, Limit: -1}
			if days > 0 {
				since := now.AddDate(0, 0, -days)
				filter.Since = &since
			}
			requests, err := services.ListConsultationRequests(db.DB, filter)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			buf, err := services.ExportConsultationsXLSX(ctx, requests)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				fmt.Fprintf(w, "Exported %d requests to %s\n", len(requests), out)
			}
			if archive {
				result, err := services.ArchiveConsultationsExport(ctx, services.InitializeStorage(cfg), buf, now)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Archived %d requests as %s\n", len(requests), result.Key)
				if result.URL != "" {
					fmt.Fprintln(w, result.URL)
				}
			}
			return services.RecordAuditEvent(db.DB, services.CLIAuditContext, services.AuditEvent{
				Action:       models.AuditActionExport,
				ResourceType: models.AuditResourceConsultation,
				Description:  fmt.Sprintf("Exported %d requests", len(requests)),
				NewValues:    map[string]interface{}{"rows": len(requests), "status": status, "variant": variant, "days": days},
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the workbook to this file")
	cmd.Flags().StringVar(&status, "status", "", "only export requests with this status (new, contacted, closed)")
	cmd.Flags().StringVar(&variant, "variant", "", "only export requests made from this page variant")
	cmd.Flags().IntVar(&days, "days", 0, "only export requests from the last N days")
	cmd.Flags().BoolVar(&archive, "archive", false, "upload the workbook to the configured storage")
	return cmd
}

func newConsultationsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Move a consultation request to new, contacted or closed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.IsValidConsultationStatus(args[1]) {
				return fmt.Errorf("unknown status %q", args[1])
			}
			if _, err := openDB(); err != nil {
				return err
			}
			defer db.Close()

			req, err := services.UpdateConsultationStatus(db.DB, args[0], args[1], time.Now(), services.CLIAuditContext)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", req.ID, req.Name, req.Status)
			return nil
		},
	}
}

func newConsultationsHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show the audit history of a consultation request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := openDB(); err != nil {
				return err
			}
			defer db.Close()

			logs, err := services.GetResourceAuditHistory(db.DB, models.AuditResourceConsultation, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(logs) == 0 {
				fmt.Fprintln(w, "No history")
				return nil
			}
			for _, l := range logs {
				fmt.Fprintf(w, "%s  %-6s  %-10s  %s\n", l.CreatedAt.Format(time.RFC3339), l.Action, l.Actor, l.Description)
				for _, ch := range l.Changes() {
					fmt.Fprintf(w, "    %s: %v -> %v\n", ch.Field, ch.Old, ch.New)
				}
			}
			return nil
		},
	}
}
