package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/petal-labs/jutge/core"
)

func (a *App) newCallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <func>",
		Short: "Call an API function",
		Long: `Call any function of the Jutge API and print its output.

The input is JSON or YAML text, @path to read it from a file, or - to read it
from stdin. Files returned by the function are saved in the --out directory.

Examples:
  jutge call misc.getFortune
  jutge call problems.getProblem --input '"P68688_en"' --yaml
  jutge call misc.getLogo --out /tmp
  jutge call testing.playground.negate --file logo.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCall(cmd.Context(), args[0])
		},
	}

	cmd.Flags().StringVar(&a.callInput, "input", "", "input as JSON or YAML, @file, or - for stdin (default null)")
	cmd.Flags().StringArrayVar(&a.callFiles, "file", nil, "file to upload (repeatable, sent in order)")
	cmd.Flags().StringVar(&a.callOut, "out", ".", "directory where downloads are saved")
	cmd.Flags().BoolVar(&a.callYAML, "yaml", false, "print the output as YAML")

	return cmd
}

// savedDownload describes a download written to disk.
type savedDownload struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Field string `json:"field"`
	Size  int    `json:"size"`
	Path  string `json:"path"`
}

func (a *App) runCall(ctx context.Context, fn string) error {
	input, err := a.readInput()
	if err != nil {
		return a.validationError(err)
	}

	files := make([][]byte, 0, len(a.callFiles))
	for _, path := range a.callFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return a.validationError(fmt.Errorf("failed to read file: %w", err))
		}
		files = append(files, data)
	}

	return a.withSession(ctx, func(ctx context.Context, s *session) error {
		out, downloads, err := s.client.Execute(ctx, fn, input, files...)
		if err != nil {
			return a.handleCallError(err)
		}

		saved, err := a.saveDownloads(downloads)
		if err != nil {
			return a.validationError(err)
		}

		if a.jsonOutput {
			return a.outputJSON(map[string]any{
				"output":    out,
				"downloads": saved,
			})
		}
		if err := a.printOutput(out); err != nil {
			return a.validationError(err)
		}
		for _, d := range saved {
			fmt.Fprintf(a.stderr, "saved %s (%s, %d bytes)\n", d.Path, d.Type, d.Size)
		}
		return nil
	})
}

// readInput returns the call input as raw JSON, or nil for no input.
func (a *App) readInput() (any, error) {
	text := a.callInput
	switch {
	case text == "":
		return nil, nil
	case text == "-":
		data, err := io.ReadAll(a.reader())
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		text = string(data)
	case text[0] == '@':
		data, err := os.ReadFile(text[1:])
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		text = string(data)
	}

	raw, err := core.YAMLToJSON([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("input is neither JSON nor YAML: %w", err)
	}
	return json.RawMessage(raw), nil
}

func (a *App) printOutput(out json.RawMessage) error {
	if a.callYAML {
		data, err := core.JSONToYAML(out)
		if err != nil {
			return err
		}
		_, err = a.stdout.Write(data)
		return err
	}

	// Strings are printed as plain text, e.g. fortunes.
	var s string
	if err := json.Unmarshal(out, &s); err == nil {
		_, err := fmt.Fprintln(a.stdout, s)
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(a.stdout)
	return err
}

func (a *App) saveDownloads(downloads []core.Download) ([]savedDownload, error) {
	saved := make([]savedDownload, 0, len(downloads))
	if len(downloads) == 0 {
		return saved, nil
	}

	if err := os.MkdirAll(a.callOut, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	for i, d := range downloads {
		name := filepath.Base(d.Name)
		if name == "." || name == string(filepath.Separator) || d.Name == "" {
			name = fmt.Sprintf("download_%d", i)
		}
		path := filepath.Join(a.callOut, name)
		if err := d.Write(path); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", name, err)
		}
		saved = append(saved, savedDownload{
			Name:  d.Name,
			Type:  d.Type,
			Field: d.Field,
			Size:  len(d.Data),
			Path:  path,
		})
	}
	return saved, nil
}
