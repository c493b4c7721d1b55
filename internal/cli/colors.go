package cli

import (
	"fmt"
	"strings"
)

// ANSI color codes for consistent styling across all CLI commands
const (
	Reset = "\033[0m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
	Gray    = "\033[90m"

	Bold = "\033[1m"
	Dim  = "\033[2m"
)

// Predefined color combinations for consistency
var (
	HeaderStyle = Cyan + Bold
	TitleStyle  = Magenta + Bold

	SuccessStyle = Green + Bold
	ErrorStyle   = Red + Bold
	WarningStyle = Yellow + Bold
	InfoStyle    = Blue + Bold

	LabelStyle = Cyan
	ValueStyle = White + Bold
	DimStyle   = Dim
	CountStyle = Yellow + Bold
	MetaStyle  = Gray

	PositiveStyle = Green
	NegativeStyle = Red
)

func FormatHeader(text string) string {
	return HeaderStyle + text + Reset
}

func FormatTitle(text string) string {
	return TitleStyle + text + Reset
}

func FormatSuccess(text string) string {
	return SuccessStyle + text + Reset
}

func FormatError(text string) string {
	return ErrorStyle + text + Reset
}

func FormatWarning(text string) string {
	return WarningStyle + text + Reset
}

func FormatLabel(text string) string {
	return LabelStyle + text + Reset
}

func FormatValue(text string) string {
	return ValueStyle + text + Reset
}

func FormatCount(count int) string {
	return CountStyle + formatCount(count) + Reset
}

func FormatMeta(text string) string {
	return MetaStyle + text + Reset
}

// FormatPercent renders a percentage with one decimal
func FormatPercent(v float64) string {
	return ValueStyle + fmt.Sprintf("%.1f%%", v) + Reset
}

// FormatSigned colors a signed score such as "+15" or "-7" by its sign
func FormatSigned(score string) string {
	switch {
	case strings.HasPrefix(score, "-"):
		return NegativeStyle + score + Reset
	case score == "+0" || score == "0":
		return MetaStyle + score + Reset
	default:
		return PositiveStyle + score + Reset
	}
}

// FormatLabelValue formats a label-value pair
func FormatLabelValue(label, value string) string {
	return LabelStyle + label + Reset + " " + ValueStyle + value + Reset
}

// printHeader prints a title underlined to its width
func printHeader(title string) {
	fmt.Println(FormatHeader(title))
	fmt.Printf("%s%s%s\n", DimStyle, strings.Repeat("=", len([]rune(title))), Reset)
	fmt.Println()
}
