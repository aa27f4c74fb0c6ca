package console

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateToWidth truncates text to width cells with an ellipsis.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 3 {
		return TrimToWidth(text, width)
	}
	return TrimToWidth(text, width-3) + "..."
}

// TrimToWidth trims text to width cells without an ellipsis.
func TrimToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	currentWidth := 0
	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width {
			break
		}
		sb.WriteRune(r)
		currentWidth += runeWidth
	}
	return sb.String()
}

// PadPlain right-pads text with spaces to width cells.
func PadPlain(text string, width int) string {
	if width <= 0 {
		return text
	}
	textWidth := runewidth.StringWidth(text)
	if textWidth >= width {
		return text
	}
	return text + strings.Repeat(" ", width-textWidth)
}

// PadLeft left-pads text with spaces to width cells.
func PadLeft(text string, width int) string {
	textWidth := runewidth.StringWidth(text)
	if width <= 0 || textWidth >= width {
		return text
	}
	return strings.Repeat(" ", width-textWidth) + text
}
