package parser

import (
	"fmt"
	"strconv"
	"strings"

	"ntt-parser/tokenizer"
	"ntt-parser/treenode"
)

// FormatDiagnostic renders d as a message line followed by a code frame. The
// frame is omitted when the diagnostic has no usable position.
func FormatDiagnostic(source string, d treenode.Diagnostic) string {
	head := fmt.Sprintf("%s: %s [%s]", d.Kind, d.Message, d.Code)
	if frame := formatCodeFrame(source, d.Pos); frame != "" {
		return head + "\n" + frame
	}
	return head
}

func formatCodeFrame(source string, pos tokenizer.Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimSuffix(lines[pos.Line-1], "\r")
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
