package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/example/todo-tracker/config"
	"github.com/example/todo-tracker/logging"
	"github.com/example/todo-tracker/modules/todo"
	"github.com/go-monolith/mono/pkg/types"
)

// Runtime carries the process collaborators Run needs.
type Runtime struct {
	Stdout io.Writer
	Stderr io.Writer
	Config config.Config
	Logger types.Logger
}

// Result is the outcome of a Run.
type Result struct {
	ExitCode int
}

// Run parses args, opens the store, performs one operation and renders it.
func Run(ctx context.Context, args []string, rt Runtime) (Result, error) {
	if rt.Logger == nil {
		rt.Logger = logging.Nop()
	}
	log := rt.Logger.WithModule("cli")

	inv, err := ParseInvocation(args)
	if err != nil {
		return Result{ExitCode: ExitCode(err)}, err
	}
	if inv.Action == ActionHelp {
		_, err := io.WriteString(rt.Stdout, usage)
		return Result{ExitCode: ExitSuccess}, err
	}

	envName := rt.Config.Env
	if inv.Env != "" {
		envName = inv.Env
	}
	env, err := todo.ParseEnvironment(envName)
	if err != nil {
		return Result{ExitCode: ExitInvalidInvocation}, &InvocationError{ExitCode: ExitInvalidInvocation, Message: err.Error()}
	}
	dir := rt.Config.DataDir
	if inv.Dir != "" {
		dir = inv.Dir
	}

	store, err := todo.Open(ctx, todo.Options{
		Env:    env,
		Dir:    dir,
		Logger: rt.Logger,
		Debug:  rt.Config.DBDebug,
	})
	if err != nil {
		return Result{ExitCode: exitCodeFor(err)}, err
	}
	defer func() {
		if err := store.Stop(ctx); err != nil {
			log.WithError(err).Warn("Failed to close store")
		}
	}()

	log.Debug("Running action", "action", string(inv.Action), "env", env.String(), "path", store.Path())

	p := newPrinter(rt.Stdout, inv.JSON, inv.NoColor || rt.Config.NoColor)
	if err := dispatch(ctx, inv, store, p); err != nil {
		return Result{ExitCode: exitCodeFor(err)}, err
	}
	return Result{ExitCode: ExitSuccess}, nil
}

func dispatch(ctx context.Context, inv Invocation, store *todo.Store, p *printer) error {
	svc := todo.NewService(store)

	switch inv.Action {
	case ActionAdd:
		task, err := svc.Create(ctx, inv.Title)
		if err != nil {
			return err
		}
		return p.created(task)

	case ActionComplete:
		task, err := svc.Complete(ctx, inv.ID)
		if err != nil {
			return err
		}
		return p.completed(task)

	case ActionGet:
		task, err := svc.Get(ctx, inv.ID)
		if err != nil {
			return err
		}
		return p.task(task)

	case ActionList, ActionRecent, ActionIncomplete:
		req := todo.ListTasksRequest{Incomplete: inv.Action == ActionIncomplete}
		if inv.Action == ActionRecent {
			limit := inv.Limit
			req.Limit = &limit
		}
		tasks, err := svc.List(ctx, req)
		if err != nil {
			return err
		}
		return p.tasks(tasks)

	case ActionHealth:
		status := store.Health(ctx)
		if err := p.health(store.Name(), status); err != nil {
			return err
		}
		if !status.Healthy {
			return fmt.Errorf("%s: %w", status.Message, todo.ErrConnection)
		}
		return nil

	default:
		return fmt.Errorf("unsupported action %q", inv.Action)
	}
}

// exitCodeFor maps store and service errors to process exit codes.
func exitCodeFor(err error) int {
	var invErr *InvocationError
	switch {
	case errors.As(err, &invErr):
		return ExitCode(err)
	case errors.Is(err, todo.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, todo.ErrEmptyTitle):
		return ExitInvalidInvocation
	case errors.Is(err, todo.ErrStorageUnavailable),
		errors.Is(err, todo.ErrSchema),
		errors.Is(err, todo.ErrConnection):
		return ExitStorageError
	default:
		return ExitInternalError
	}
}

// Main runs the CLI and reports any error on rt.Stderr. It returns the exit code.
func Main(ctx context.Context, args []string, rt Runtime) int {
	res, err := Run(ctx, args, rt)
	if err != nil {
		failure(rt.Stderr, rt.Config.NoColor, err)
	}
	return res.ExitCode
}
