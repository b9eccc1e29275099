// Package doc provides the commands that read block documents from files or
// stdin: scan, tree, check, fmt and convert.
package doc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/open-cli-collective/blocks-cli/internal/view"
	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

// stdinName is how documents read from stdin are named in output.
const stdinName = "<stdin>"

// readInput reads the document at path, or stdin when path is empty or "-".
func readInput(path string, stdin io.Reader) (text, name string, err error) {
	if path == "" || path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), stdinName, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), path, nil
}

func outputOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

func newRenderer(output string, noColor bool, out io.Writer) *view.Renderer {
	r := view.NewRenderer(view.Format(output), noColor)
	r.SetWriter(outputOrStdout(out))
	return r
}

// TokenRow is one scanned token as displayed.
type TokenRow struct {
	Offset      int    `json:"offset"`
	Length      int    `json:"length"`
	Type        string `json:"type"`
	Block       string `json:"block"`
	Depth       int    `json:"depth"`
	ClosingFlag bool   `json:"closing_flag,omitempty"`
	Attrs       string `json:"attrs,omitempty"`
}

// ScanTokens tokenizes text, keeping the tokens accepted by filter (see
// Processor.NextDelimiter). Freeform runs are only kept when html is set or
// the filter selects them. On incomplete input the rows read so far are
// returned with the error.
func ScanTokens(text, filter string, html bool) ([]TokenRow, error) {
	if html && filter == "" {
		filter = "*"
	}

	p := blocks.NewProcessor(text)
	rows := []TokenRow{}
	for {
		tok, err := p.NextDelimiter(filter)
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}

		typ := tok.Type.String()
		if tok.IsHTML() {
			typ = "html"
		}
		rows = append(rows, TokenRow{
			Offset:      tok.Span.Start,
			Length:      tok.Span.Length,
			Type:        typ,
			Block:       tok.PrintableName().String(),
			Depth:       tok.Depth,
			ClosingFlag: tok.ClosingFlag,
			Attrs:       p.RawAttributes(),
		})
	}
}

// RenderTokens writes token rows in the renderer's format.
func RenderTokens(r *view.Renderer, rows []TokenRow) error {
	if r.Format() == view.FormatJSON {
		return r.RenderJSON(rows)
	}

	headers := []string{"OFFSET", "LENGTH", "TYPE", "BLOCK", "DEPTH", "ATTRS"}
	var table [][]string
	for _, row := range rows {
		typ := row.Type
		if row.ClosingFlag && typ == blocks.Void.String() {
			typ += "/"
		}
		table = append(table, []string{
			fmt.Sprint(row.Offset),
			fmt.Sprint(row.Length),
			typ,
			row.Block,
			fmt.Sprint(row.Depth),
			view.Truncate(row.Attrs, 40),
		})
	}
	r.RenderTable(headers, table)
	return nil
}

// RenderTree writes the block tree: the legacy JSON layout for JSON output,
// an indented outline otherwise.
func RenderTree(r *view.Renderer, nodes []*blocks.BlockNode) error {
	if r.Format() == view.FormatJSON {
		if nodes == nil {
			nodes = []*blocks.BlockNode{}
		}
		return r.RenderJSON(nodes)
	}

	blocks.Walk(nodes, func(n *blocks.BlockNode, depth int) {
		if n.IsFreeform() {
			if strings.TrimSpace(n.InnerHTML) == "" {
				return
			}
			r.RenderText(strings.Repeat("  ", depth) + "(freeform) " + view.Truncate(oneLine(n.InnerHTML), 50))
			return
		}

		line := strings.Repeat("  ", depth) + n.Name.String()
		switch {
		case n.AttrsErr != nil:
			line += " (invalid attributes)"
		case len(n.Attrs) > 0:
			line += " " + view.Truncate(n.Attrs.String(), 60)
		}
		r.RenderText(line)
	})
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DiagnosticRow is one diagnostic with its position resolved.
type DiagnosticRow struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// DiagnosticRows resolves diagnostics to one-based lines and columns.
func DiagnosticRows(name, text string, diags []blocks.Diagnostic) []DiagnosticRow {
	rows := make([]DiagnosticRow, 0, len(diags))
	for _, d := range diags {
		line, col := blocks.Position(text, d.Span.Start)
		rows = append(rows, DiagnosticRow{
			File:     name,
			Line:     line + 1,
			Column:   col + 1,
			Severity: d.Severity.String(),
			Message:  d.Message,
		})
	}
	return rows
}

// RenderDiagnostics writes diagnostics as file:line:col lines, or as JSON.
func RenderDiagnostics(r *view.Renderer, rows []DiagnosticRow) error {
	if r.Format() == view.FormatJSON {
		return r.RenderJSON(rows)
	}

	if r.Format() == view.FormatPlain {
		var table [][]string
		for _, row := range rows {
			table = append(table, []string{row.File, fmt.Sprint(row.Line), fmt.Sprint(row.Column), row.Severity, row.Message})
		}
		r.RenderTable(nil, table)
		return nil
	}

	for _, row := range rows {
		c := color.New(color.Reset)
		switch row.Severity {
		case blocks.SeverityError.String():
			c = color.New(color.FgRed)
		case blocks.SeverityWarning.String():
			c = color.New(color.FgYellow)
		}
		r.RenderText(fmt.Sprintf("%s:%d:%d: %s: %s", row.File, row.Line, row.Column, c.Sprint(row.Severity), row.Message))
	}
	return nil
}

// CountSeverity counts rows of the given severity.
func CountSeverity(rows []DiagnosticRow, s blocks.Severity) int {
	n := 0
	for _, row := range rows {
		if row.Severity == s.String() {
			n++
		}
	}
	return n
}
