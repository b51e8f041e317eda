package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/ui/theme"
)

// printEvents writes the headline of events, styled by outcome.
func printEvents(w io.Writer, events []notify.Event) {
	if len(events) == 0 {
		return
	}
	style := theme.Correct
	for _, ev := range events {
		if ev.Failure() || ev.Kind == notify.AnswerIncorrect {
			style = theme.Incorrect
			break
		}
	}
	lipgloss.Fprintln(w, style.Render(notify.Headline(events)))
}

// printRule writes a header underline of width n.
func printRule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

// truncate shortens s to at most n terminal cells.
func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "…")
}

// parseID parses a positional numeric id argument.
func parseID(what, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}
