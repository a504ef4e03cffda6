package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"file_bridge_app_go/services/content"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect and scaffold landing page content files",
	}
	cmd.AddCommand(newContentValidateCmd(), newContentScaffoldCmd(), newContentDiffCmd())
	return cmd
}

func newContentValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a content file, or the embedded content when no path is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				catalog *content.Catalog
				err     error
				source  = "embedded content"
			)
			if len(args) == 1 {
				source = args[0]
				catalog, err = content.LoadFile(args[0])
			} else {
				catalog, err = content.LoadEmbedded()
			}
			if err != nil {
				return fmt.Errorf("%s is invalid:\n%w", source, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s is valid\n", source)
			for _, key := range catalog.Keys() {
				v := catalog.Variants[key]
				marker := ""
				if key == catalog.DefaultVariant {
					marker = " (default)"
				}
				fmt.Fprintf(out, "  %s%s: %d stats, %d service tabs, %d testimonials\n",
					key, marker, len(v.Stats), len(v.ServiceTabs), len(v.Quotes))
			}
			return nil
		},
	}
}

func newContentScaffoldCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "scaffold [path]",
		Short: "Write the embedded content to a file as a starting point",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.ContentPath
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			if err := os.WriteFile(path, content.DefaultYAML(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newContentDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show what changes between two content files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := content.LoadFile(args[0])
			if err != nil {
				return err
			}
			after, err := content.LoadFile(args[1])
			if err != nil {
				return err
			}
			if diff := cmp.Diff(before, after); diff != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "--- %s\n+++ %s\n%s", args[0], args[1], diff)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "No differences")
			return nil
		},
	}
}
