package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/gotodo/internal/client/client"
	"github.com/dmitrijs2005/gotodo/internal/client/config"
	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/logging"
	"github.com/dmitrijs2005/gotodo/internal/todov1"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config *config.Config
	client client.Client
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewTodoClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)
	return newApp(c, apiClient, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		client: cl,
		logger: logger.With("module", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run starts the REPL and closes the connection when it ends. The prompt is
// shown only when stdin is a terminal so piped scripts stay clean.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.client.Close(); err != nil {
			a.logger.Error(ctx, "close error", "error", err)
		}
	}()

	var prompt func() string
	if isTerminal(int(os.Stdin.Fd())) {
		printlnFn(fmt.Sprintf("Todo CLI connected to %s (type 'help' for commands)", a.config.ServerEndpointAddr))
		prompt = func() string { return "todo> " }
	}

	runREPL(ctx, a, prompt, a.reader)
}

func (a *App) List(ctx context.Context, args []string) error {
	var prefix *string
	if len(args) > 0 {
		p := strings.Join(args, " ")
		prefix = &p
	}

	todos, err := a.client.FindAll(ctx, prefix)
	if err != nil {
		return a.fail(ctx, "list", err)
	}

	fmt.Fprintln(a.out, renderList(todos))
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	t, err := a.client.FindOne(ctx, id)
	if err != nil {
		return a.fail(ctx, "show", err)
	}

	fmt.Fprintln(a.out, renderCard(t))
	return nil
}

func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	t, err := a.client.Create(ctx, title, description)
	if err != nil {
		return a.fail(ctx, "add", err)
	}

	fmt.Fprintln(a.out, renderRow(t))
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	title, err := GetOptionalText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := GetOptionalText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	t, err := a.client.Update(ctx, &todov1.UpdateRequest{ID: id, Title: title, Description: description})
	if err != nil {
		return a.fail(ctx, "edit", err)
	}

	fmt.Fprintln(a.out, renderCard(t))
	return nil
}

func (a *App) SetComplete(ctx context.Context, args []string, complete bool) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	t, err := a.client.Update(ctx, &todov1.UpdateRequest{ID: id, Complete: &complete})
	if err != nil {
		return a.fail(ctx, "update", err)
	}

	fmt.Fprintln(a.out, renderRow(t))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	if err := a.client.Remove(ctx, id); err != nil {
		return a.fail(ctx, "delete", err)
	}

	fmt.Fprintln(a.out, mutedStyle.Render(fmt.Sprintf("deleted #%d", id)))
	return nil
}

// fail logs unexpected errors; expected ones go to the user only.
func (a *App) fail(ctx context.Context, op string, err error) error {
	if !errors.Is(err, common.ErrorTodoNotFound) && !errors.Is(err, client.ErrInvalidArgument) {
		a.logger.Warn(ctx, "command failed", "command", op, "error", err)
	}
	return err
}
