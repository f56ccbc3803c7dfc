// internal/common/cli/print.go

// Package cli holds terminal output helpers shared by the commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"grant-crosswalk/internal/models"
)

var (
	SuccessColor = color.New(color.FgGreen, color.Bold)
	ErrorColor   = color.New(color.FgRed, color.Bold)
	WarningColor = color.New(color.FgYellow, color.Bold)
	InfoColor    = color.New(color.FgCyan, color.Bold)
	TitleColor   = color.New(color.FgMagenta, color.Bold)
)

func PrintSuccess(format string, args ...interface{}) {
	SuccessColor.Printf(format+"\n", args...)
}

func PrintError(format string, args ...interface{}) {
	ErrorColor.Printf(format+"\n", args...)
}

func PrintWarning(format string, args ...interface{}) {
	WarningColor.Printf(format+"\n", args...)
}

func PrintInfo(format string, args ...interface{}) {
	InfoColor.Printf(format+"\n", args...)
}

func PrintTitle(format string, args ...interface{}) {
	TitleColor.Printf(format+"\n", args...)
}

func PrintSeparator() {
	fmt.Println(strings.Repeat("-", 72))
}

// RiskString renders a risk level in its own color.
func RiskString(risk models.RiskLevel) string {
	switch risk {
	case models.RiskGreen:
		return SuccessColor.Sprint(string(risk))
	case models.RiskYellow:
		return WarningColor.Sprint(string(risk))
	case models.RiskRed:
		return ErrorColor.Sprint(string(risk))
	default:
		return string(risk)
	}
}

// AlignmentString renders an alignment level in its own color.
func AlignmentString(level models.AlignmentLevel) string {
	switch level {
	case models.AlignmentStrong:
		return SuccessColor.Sprint(string(level))
	case models.AlignmentPartial:
		return WarningColor.Sprint(string(level))
	case models.AlignmentWeak, models.AlignmentNone:
		return ErrorColor.Sprint(string(level))
	default:
		return string(level)
	}
}
