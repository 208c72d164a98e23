package info

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Print writes the header fields followed by the image layout to w.
// - `useColor` controls whether colored output is used.
// - `useHexOffset` prints section offsets in hexadecimal if true.
func (i *HeaderInfo) Print(w io.Writer, useColor bool, useHexOffset bool) {
	plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
	titleColor := color.New(color.FgCyan, color.Bold).SprintFunc()
	nameColor := color.New(color.FgYellow).SprintFunc()
	offsetColor := color.New(color.FgGreen).SprintFunc()
	sectionColor := color.New(color.FgMagenta, color.Bold).SprintFunc()
	if !useColor {
		titleColor, nameColor, offsetColor, sectionColor = plain, plain, plain, plain
	}

	fmt.Fprintln(w, titleColor(fmt.Sprintf("=== %s header v%d ===", i.Family, i.HeaderVersion)))

	nameWidth := 0
	for _, f := range i.Fields {
		nameWidth = max(nameWidth, len(f.Name))
	}
	for _, f := range i.Fields {
		fmt.Fprintf(w, "%s  %s\n", nameColor(fmt.Sprintf("%-*s", nameWidth, f.Name)), f.Value)
	}
	if i.OSVersion != nil {
		fmt.Fprintf(w, "%s  %s\n", nameColor(fmt.Sprintf("%-*s", nameWidth, "os_release")), i.OSVersion)
	}

	if i.Layout == nil {
		return
	}

	fmt.Fprintln(w, titleColor(fmt.Sprintf("=== layout (page size %d) ===", i.Layout.PageSize)))
	for _, s := range i.Layout.Sections {
		offsetStr := fmt.Sprintf("Offset: %10d", s.Offset)
		if useHexOffset {
			offsetStr = fmt.Sprintf("Offset: %#10x", s.Offset)
		}
		fmt.Fprintf(w, "[%s] [%s] [%s]\n",
			offsetColor(offsetStr),
			sectionColor(fmt.Sprintf("%-20s", s.Name)),
			offsetColor(formatSize(s.Size)),
		)
	}
}

// formatSize converts a size in bytes to a human-readable format.
func formatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%8.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%8.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%8.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%8d B ", size)
	}
}
