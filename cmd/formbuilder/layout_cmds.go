package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/pkg/layout"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

func newRenderCmd() *cobra.Command {
	var (
		out    string
		title  string
		action string
	)
	cmd := &cobra.Command{
		Use:   "render <layout-file>",
		Short: "Render a layout file as an HTML form",
		Long: `Renders the layout with the vanilla HTML renderer. Without --action the
form is a read-only preview with no submit control.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := formbuilder.LoadLayout(args[0], nil)
			if err != nil {
				return err
			}
			html, err := formbuilder.RenderHTML(cmd.Context(), l, render.RenderOptions{
				Title:  title,
				Action: action,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, html)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&title, "title", "", "form title")
	cmd.Flags().StringVar(&action, "action", "", "submission endpoint")
	return cmd
}

func newFillCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "fill <layout-file>",
		Short: "Fill a layout interactively in the terminal",
		Long: `Prompts for every input element in layout order and prints the
submission once every value passes validation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := formbuilder.LoadLayout(args[0], nil)
			if err != nil {
				return err
			}
			var output tui.OutputFormat
			switch format {
			case "json":
				output = tui.OutputFormatJSON
			case "text":
				output = tui.OutputFormatPrettyText
			default:
				return fmt.Errorf("unsupported format %q (want json or text)", format)
			}
			r, err := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
				tui.WithOutputFormat(output),
			)
			if err != nil {
				return err
			}
			values, err := r.Render(cmd.Context(), l, render.RenderOptions{})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(values))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or text")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		format string
		out    string
		share  string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "export <layout-file>",
		Short: "Convert a layout file to JSON, YAML or an OpenAPI contract",
		Long: `Normalizes a layout file and writes it back out.

Formats:
  json    - canonical serialized layout
  yaml    - the same records as YAML
  openapi - submission contract for the form shared as --share`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := formbuilder.LoadLayout(args[0], nil)
			if err != nil {
				return err
			}
			var data []byte
			switch strings.ToLower(format) {
			case "json":
				data, err = layout.Serialize(l)
			case "yaml", "yml":
				data, err = layout.EncodeYAML(l)
			case "openapi":
				doc, specErr := openapi.SubmissionSpec(title, share, l, nil)
				if specErr != nil {
					return specErr
				}
				data, err = json.MarshalIndent(doc, "", "  ")
			default:
				return fmt.Errorf("unsupported format %q (want json, yaml or openapi)", format)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, data)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or openapi")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&share, "share", "preview", "share URL used in the openapi contract path")
	cmd.Flags().StringVar(&title, "title", "", "title of the openapi contract")
	return cmd
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		w := cmd.OutOrStdout()
		if _, err := w.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := io.WriteString(w, "\n")
			return err
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Written to %s\n", path)
	return nil
}
