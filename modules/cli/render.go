package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	domain "github.com/example/todo-tracker/domain/todo"
	"github.com/example/todo-tracker/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

const timeLayout = "2006-01-02 15:04"

// printer renders results. It always writes ANSI colors; the underlying
// writer strips them when color is off.
type printer struct {
	w    io.Writer
	json bool
}

// newPrinter picks a colorable writer for terminals and an escape-stripping
// writer for everything else.
func newPrinter(w io.Writer, asJSON, noColor bool) *printer {
	if asJSON {
		return &printer{w: w, json: true}
	}
	if f, ok := w.(*os.File); ok && !noColor && isTerminal(f) {
		return &printer{w: colorable.NewColorable(f)}
	}
	return &printer{w: colorable.NewNonColorable(w)}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func paint(color, s string) string {
	return color + s + ansiReset
}

func (p *printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) created(task domain.Task) error {
	if p.json {
		return p.writeJSON(todo.ToTaskResponse(task))
	}
	_, err := fmt.Fprintf(p.w, "%s %s\n%s\n", paint(ansiGreen, "added"), task.Title, paint(ansiDim, task.ID))
	return err
}

func (p *printer) completed(task domain.Task) error {
	if p.json {
		return p.writeJSON(todo.ToTaskResponse(task))
	}
	_, err := fmt.Fprintf(p.w, "%s %s %s\n", paint(ansiGreen, "completed"), task.Title, paint(ansiDim, "("+task.ID+")"))
	return err
}

func (p *printer) task(task domain.Task) error {
	if p.json {
		return p.writeJSON(todo.ToTaskResponse(task))
	}
	status := paint(ansiYellow, "open")
	if task.Completed {
		status = paint(ansiGreen, "done")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", paint(ansiBold, "title:  "), task.Title)
	fmt.Fprintf(&b, "%s %s\n", paint(ansiBold, "id:     "), task.ID)
	fmt.Fprintf(&b, "%s %s\n", paint(ansiBold, "status: "), status)
	fmt.Fprintf(&b, "%s %s\n", paint(ansiBold, "created:"), task.CreatedTime().Format(timeLayout))
	fmt.Fprintf(&b, "%s %s\n", paint(ansiBold, "updated:"), task.UpdatedTime().Format(timeLayout))
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *printer) tasks(tasks []domain.Task) error {
	if p.json {
		return p.writeJSON(todo.ToListTasksResponse(tasks))
	}
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(p.w, paint(ansiDim, "no tasks"))
		return err
	}
	var b strings.Builder
	for _, task := range tasks {
		mark := paint(ansiYellow, "[ ]")
		title := task.Title
		if task.Completed {
			mark = paint(ansiGreen, "[x]")
			title = paint(ansiDim, title)
		}
		fmt.Fprintf(&b, "%s %s  %s  %s\n",
			mark,
			title,
			paint(ansiCyan, task.CreatedTime().Format(timeLayout)),
			paint(ansiDim, task.ID),
		)
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *printer) health(name string, status mono.HealthStatus) error {
	if p.json {
		return p.writeJSON(map[string]any{
			"module":  name,
			"healthy": status.Healthy,
			"message": status.Message,
			"details": status.Details,
		})
	}
	state := paint(ansiGreen, status.Message)
	if !status.Healthy {
		state = paint(ansiRed, status.Message)
	}
	if _, err := fmt.Fprintf(p.w, "%s: %s\n", name, state); err != nil {
		return err
	}
	for _, key := range []string{"env", "path", "tasks"} {
		if v, ok := status.Details[key]; ok {
			if _, err := fmt.Fprintf(p.w, "  %s: %v\n", key, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// failure writes an error line to w, red on terminals.
func failure(w io.Writer, noColor bool, err error) {
	p := newPrinter(w, false, noColor)
	fmt.Fprintf(p.w, "%s %v\n", paint(ansiRed, "error:"), err)
}
