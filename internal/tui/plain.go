package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/tui/styles"
)

const defaultPlainWidth = 80

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of f, or 80 when it is not a terminal
func TerminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultPlainWidth
	}
	return w
}

// PlainOptions configures a single non-interactive render
type PlainOptions struct {
	Kind   ViewKind
	Query  string
	Images domain.ImageConfig
	Width  int
}

// RunPlain loads one view and prints it as text lines, one card per line.
// It goes through the same state machine as the interactive grid. The
// returned error is the load failure, if any; the printed output only ever
// carries the user-facing message.
func RunPlain(ctx context.Context, w io.Writer, catalog domain.Catalog, logger *slog.Logger, opts PlainOptions) error {
	if logger == nil {
		logger = slog.Default()
	}
	width := opts.Width
	if width <= 0 {
		width = defaultPlainWidth
	}

	v := NewContentView(opts.Kind, opts.Images, 0)
	v.State.Query = strings.TrimSpace(opts.Query)

	var loadErr error
	if v.Kind() == ViewSearch && v.State.Query == "" {
		v.State = v.State.Reset()
	} else {
		var seq uint64
		v.State, seq = v.State.Begin(v.State.Query)
		page, err := fetchContent(ctx, catalog, v.Kind(), v.State.Query)
		if err != nil {
			loadErr = err
			v.ApplyFailed(ContentFailedMsg{View: v.Kind(), Seq: seq, Err: err}, logger)
		} else {
			v.ApplyLoaded(ContentLoadedMsg{View: v.Kind(), Seq: seq, Page: page})
		}
	}

	if _, err := fmt.Fprintln(w, v.Heading()); err != nil {
		return err
	}
	if text := v.StatusText(); text != "" {
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
		return loadErr
	}

	for _, line := range PlainLines(v, width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PlainLines formats the loaded items as "title  type  poster" rows
func PlainLines(v *ContentView, width int) []string {
	const typeWidth = 6
	titleWidth := max(width/2, 10)

	lines := make([]string, 0, len(v.State.Items))
	for _, item := range v.State.Items {
		title := styles.Pad(styles.Truncate(item.DisplayTitle(), titleWidth), titleWidth)
		mediaType := styles.Pad(item.MediaType, typeWidth)
		rest := max(width-titleWidth-typeWidth-4, 0)
		lines = append(lines, strings.TrimRight(
			title+"  "+mediaType+"  "+styles.Truncate(v.Grid.ImageSource(item), rest), " "))
	}
	return lines
}
