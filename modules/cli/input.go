// Package cli is the command surface of the todo tracker: it parses
// arguments, runs exactly one store operation and renders the result.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	ExitSuccess           = 0
	ExitNotFound          = 1
	ExitInvalidInvocation = 2
	ExitStorageError      = 3
	ExitInternalError     = 4
)

// Action is the single operation an invocation performs.
type Action string

const (
	ActionAdd        Action = "add"
	ActionComplete   Action = "complete"
	ActionGet        Action = "get"
	ActionList       Action = "list"
	ActionRecent     Action = "recent"
	ActionIncomplete Action = "incomplete"
	ActionHealth     Action = "health"
	ActionHelp       Action = "help"
)

// Invocation is the parsed form of the command line.
type Invocation struct {
	Action  Action
	Title   string
	ID      string
	Limit   int
	JSON    bool
	NoColor bool
	// Env and Dir are empty when not given on the command line.
	Env string
	Dir string
}

// InvocationError reports a malformed command line.
type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

const usage = `usage: todo [flags] [title...]

  todo "buy milk"            add a task and print its id
  todo -c <id>               mark a task complete
  todo -g <id>               show one task
  todo -l                    list all tasks, oldest first
  todo -n 5                  list the 5 most recent tasks
  todo -i                    list incomplete tasks

flags:
  -c, --complete <id>   mark the task complete
  -g, --get <id>        show a single task
  -l, --list            list all tasks
  -n, --recent <N>      list the N most recently created tasks
  -i, --incomplete      list tasks that are not completed
      --health          check the store and print its location
      --json            print JSON instead of text
      --no-color        disable colored output
      --env <prod|test> store environment (default from TODO_ENV)
      --dir <path>      data directory (default from TODO_DATA_DIR)
  -h, --help            show this help
`

// ParseInvocation parses CLI arguments. Flags may appear before or after the
// title words.
func ParseInvocation(args []string) (Invocation, error) {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		inv        Invocation
		complete   string
		get        string
		list       bool
		recent     int
		incomplete bool
		health     bool
		help       bool
	)
	recent = -1

	fs.StringVar(&complete, "complete", "", "")
	fs.StringVar(&complete, "c", "", "")
	fs.StringVar(&get, "get", "", "")
	fs.StringVar(&get, "g", "", "")
	fs.BoolVar(&list, "list", false, "")
	fs.BoolVar(&list, "l", false, "")
	fs.IntVar(&recent, "recent", -1, "")
	fs.IntVar(&recent, "n", -1, "")
	fs.BoolVar(&incomplete, "incomplete", false, "")
	fs.BoolVar(&incomplete, "i", false, "")
	fs.BoolVar(&health, "health", false, "")
	fs.BoolVar(&inv.JSON, "json", false, "")
	fs.BoolVar(&inv.NoColor, "no-color", false, "")
	fs.StringVar(&inv.Env, "env", "", "")
	fs.StringVar(&inv.Dir, "dir", "", "")
	fs.BoolVar(&help, "help", false, "")
	fs.BoolVar(&help, "h", false, "")

	var words []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return Invocation{Action: ActionHelp}, nil
			}
			return Invocation{}, invalidInvocationf("%v", err)
		}
		if fs.NArg() == 0 {
			break
		}
		words = append(words, fs.Arg(0))
		rest = fs.Args()[1:]
	}

	if help {
		return Invocation{Action: ActionHelp}, nil
	}

	var actions []Action
	if len(words) > 0 {
		inv.Title = strings.TrimSpace(strings.Join(words, " "))
		if inv.Title == "" {
			return Invocation{}, invalidInvocationf("title must not be blank")
		}
		actions = append(actions, ActionAdd)
	}
	if complete != "" {
		inv.ID = complete
		actions = append(actions, ActionComplete)
	}
	if get != "" {
		inv.ID = get
		actions = append(actions, ActionGet)
	}
	if recent != -1 {
		if recent < 0 {
			return Invocation{}, invalidInvocationf("--recent must be non-negative (got %d)", recent)
		}
		inv.Limit = recent
		actions = append(actions, ActionRecent)
	}
	if incomplete {
		actions = append(actions, ActionIncomplete)
	}
	if list && len(actions) == 0 {
		actions = append(actions, ActionList)
	} else if list && !isListing(actions) {
		return Invocation{}, invalidInvocationf("--list cannot be combined with %s", actions[0])
	}
	if health {
		actions = append(actions, ActionHealth)
	}

	switch len(actions) {
	case 0:
		return Invocation{}, invalidInvocationf("nothing to do\n\n%s", usage)
	case 1:
		inv.Action = actions[0]
	default:
		names := make([]string, 0, len(actions))
		for _, a := range actions {
			names = append(names, string(a))
		}
		return Invocation{}, invalidInvocationf("only one action per invocation (got %s)", strings.Join(names, ", "))
	}

	return inv, nil
}

// isListing reports whether actions is a single list variant, which --list may accompany.
func isListing(actions []Action) bool {
	return len(actions) == 1 && (actions[0] == ActionRecent || actions[0] == ActionIncomplete)
}

// ExitCode extracts the exit code from a ParseInvocation error.
func ExitCode(err error) int {
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	return ExitInternalError
}
