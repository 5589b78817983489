// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matt-FFFFFF/cmdshelf/internal/color"
)

// OutputOptions controls what is included in the output.
type OutputOptions struct {
	IncludeStdOut      bool // Whether to include stdout in the output
	IncludeStdErr      bool // Whether to include stderr in the output
	ShowSuccessDetails bool // Whether to show details for successful commands
	ShowDuration       bool // Whether to append the run time to the status line
}

// DefaultOutputOptions returns a default set of output options.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeStdOut:      false,
		IncludeStdErr:      true,
		ShowSuccessDetails: false,
	}
}

// WriteText writes a line per result to w, followed by the error and
// captured output of failed results. A nil options uses DefaultOutputOptions.
func (r Results) WriteText(w io.Writer, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	for _, res := range r {
		if err := writeResult(w, res, options); err != nil {
			return err
		}
	}

	return nil
}

func writeResult(w io.Writer, r *Result, options *OutputOptions) error {
	var sb strings.Builder

	var statusStr string

	switch r.Status {
	case ResultStatusError:
		statusStr = color.Colorize("✗", color.FgRed)
	case ResultStatusSuccess:
		statusStr = color.Colorize("✓", color.FgGreen)
	default:
		statusStr = color.Colorize("?", color.FgWhite)
	}

	label := r.Label
	if label == "" {
		label = "[unnamed]"
	}

	switch r.Status {
	case ResultStatusError:
		label = color.Colorize(label, color.Bold, color.FgRed)
	case ResultStatusSuccess:
		label = color.Colorize(label, color.Bold, color.FgGreen)
	}

	fmt.Fprintf(&sb, "%s %s", statusStr, label)

	if r.ExitCode != 0 {
		fmt.Fprintf(&sb, " (exit code: %d)", r.ExitCode)
	}

	if options.ShowDuration && r.Duration > 0 {
		sb.WriteString(color.Dim(fmt.Sprintf(" [%s]", r.Duration.Round(time.Millisecond))))
	}

	sb.WriteByte('\n')

	if r.Error != nil {
		fmt.Fprintf(&sb, "  %s %s\n", color.Failure("➜ Error:"), r.Error.Error())
	}

	shouldShowDetails := r.Status != ResultStatusSuccess || options.ShowSuccessDetails

	if shouldShowDetails && options.IncludeStdOut && len(r.StdOut) > 0 {
		sb.WriteString("  ➜ Output:\n")
		sb.WriteString(formatOutput(r.StdOut, "     "))
	}

	if shouldShowDetails && options.IncludeStdErr && len(r.StdErr) > 0 {
		fmt.Fprintf(&sb, "  %s\n", color.Colorize("➜ Error Output:", color.FgHiRed))
		sb.WriteString(formatOutput(r.StdErr, "     "))
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// formatOutput indents each non-empty line of output.
func formatOutput(output []byte, indent string) string {
	sb := strings.Builder{}
	lines := strings.Split(strings.TrimSuffix(string(output), "\n"), "\n")
	sb.Grow(len(output) + len(lines)*(len(indent)+1))

	for _, line := range lines {
		if line == "" {
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}
