package color

import (
	"os"

	"github.com/muesli/termenv"
)

const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"

	BrightRed = "\033[91m"
)

var colorEnabled = true

// Diagnostics go to stderr, so that is the stream whose capabilities decide.
// termenv honours NO_COLOR and CLICOLOR_FORCE.
func init() {
	if termenv.NewOutput(os.Stderr).EnvColorProfile() == termenv.Ascii {
		colorEnabled = false
	}
}

func EnableColor(enable bool) {
	colorEnabled = enable
}

func IsColorEnabled() bool {
	return colorEnabled
}

func Colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return color + text + Reset
}

func RedText(text string) string {
	return Colorize(Red, text)
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	return Colorize(Bold, text)
}

func Error(message string) string {
	if !colorEnabled {
		return "Error: " + message
	}
	return BrightRedText("Error: ") + message
}
