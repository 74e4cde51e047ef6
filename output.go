package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/shu-go/git-cm/commitmsg"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	adviceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func styled(st lipgloss.Style, s string) string {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return s
	}
	return st.Render(s)
}

func printResult(w io.Writer, res commitmsg.Result) {
	if res.Valid {
		fmt.Fprintln(w, styled(okStyle, "OK: message is a valid conventional commit"))
		return
	}

	for _, e := range res.Errors {
		fmt.Fprintln(w, styled(errStyle, "error: "+e))
	}
}

func printAdvice(w io.Writer, a commitmsg.Analysis) {
	for _, s := range a.Suggestions {
		fmt.Fprintln(w, styled(adviceStyle, "hint: "+s.Message))
	}
}
