package commands

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wonny/gdpdash/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// notAvailable is printed for a missing value or ratio
const notAvailable = "N/A"

// printer groups thousands ("1,234")
var printer = message.NewPrinter(language.English)

// formatBillions scales a raw GDP value (US$) to billions: 1.5e12 → "1,500B"
func formatBillions(v contracts.Value) string {
	if v.IsMissing() {
		return notAvailable
	}
	return printer.Sprintf("%.0fB", v.Float/1e9)
}

// formatRatio prints a growth multiple: 2 → "2.00x"
func formatRatio(v contracts.Value) string {
	if v.IsMissing() {
		return notAvailable
	}
	return fmt.Sprintf("%.2fx", v.Float)
}

// PrintHeader prints a titled block
func PrintHeader(w io.Writer, title string, lines ...string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "  %s\n", title)
	if len(lines) > 0 {
		fmt.Fprintln(w, "───────────────────────────────────────────────────────────")
		for _, line := range lines {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "❌ %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row; columns after the first are right aligned
func PrintTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		if i == 0 {
			fmt.Fprintf(w, "%-*s", widths[i], val)
		} else {
			fmt.Fprintf(w, "%*s", widths[i], val)
		}
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(w io.Writer, key string, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}
