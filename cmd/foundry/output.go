package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	foundry "github.com/goliatone/go-foundry"
	"github.com/goliatone/go-foundry/pkg/export"
)

func (a *app) emit(output string, data []byte) error {
	if output == "" {
		_, err := a.out.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	a.printf("Written to %s\n", output)
	return nil
}

func newPreviewCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "preview <interface>",
		Short: "Render the HTML preview of a form interface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := foundry.RenderHTML(cmd.Context(), a.catalog, a.projectName(), args[0])
			if err != nil {
				return err
			}
			return a.emit(output, html)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var output, format string
	cmd := &cobra.Command{
		Use:   "export <interface>",
		Short: "Export a form interface as an OpenAPI document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := foundry.ExportOpenAPI(cmd.Context(), a.catalog, a.projectName(), args[0], f)
			if err != nil {
				return err
			}
			return a.emit(output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "Output format: json or yaml")
	return cmd
}

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file>...",
		Short: "Check exported OpenAPI documents for malformed foundry extensions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			total := 0
			for _, path := range args {
				n, err := a.lintFile(cmd.Context(), path)
				if err != nil {
					return err
				}
				total += n
			}
			if total > 0 {
				return fmt.Errorf("%d lint violation(s)", total)
			}
			a.printf("No violations found.\n")
			return nil
		},
	}
}

func (a *app) lintFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("lint %s: %w", path, err)
	}
	doc, err := export.Load(ctx, raw)
	if err != nil {
		return 0, fmt.Errorf("lint %s: %w", path, err)
	}
	violations := export.Lint(doc)
	for _, v := range violations {
		a.printf("%s: %s\n", path, v)
	}
	return len(violations), nil
}
