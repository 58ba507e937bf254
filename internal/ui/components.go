package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/olivier-w/vibra/internal/util"
)

func renderProgress(bar progress.Model, elapsed, total time.Duration) string {
	var ratio float64
	if total > 0 {
		ratio = elapsed.Seconds() / total.Seconds()
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return fmt.Sprintf("%s %s %s",
		clockStyle.Render(util.FormatDuration(elapsed)),
		bar.ViewAs(ratio),
		clockStyle.Render(util.FormatDuration(total)))
}

func formatSimTime(t float64) string {
	return util.FormatSeconds(t)
}

func indentBlock(s, prefix string) string {
	if s == "" {
		return prefix
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
