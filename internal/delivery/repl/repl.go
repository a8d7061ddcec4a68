// Package repl is the interactive terminal front end.
package repl

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"productsmanager/internal/delivery"
	deliverycontext "productsmanager/internal/delivery/context"
	domainerrors "productsmanager/internal/domain/errors"
	"productsmanager/internal/usecase"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/term"
)

const prompt = "products"

// Params holds the dependencies of the terminal front end.
type Params struct {
	fx.In

	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Auth       usecase.AuthUsecase
	Catalog    usecase.CatalogUsecase
}

// Console reads one command per line and dispatches it to the usecases.
// It is single-threaded, so calls into the core never overlap.
type Console struct {
	auth    usecase.AuthUsecase
	catalog usecase.CatalogUsecase
	logger  *slog.Logger

	in  *bufio.Reader
	out io.Writer

	// readPassword reads a secret without echo. Nil means plain line input.
	readPassword func() ([]byte, error)
	shutdowner   fx.Shutdowner

	errColor  *color.Color
	okColor   *color.Color
	infoColor *color.Color
}

// New builds the console on the process's stdin and stdout.
func New(params Params) delivery.Delivery {
	c := NewConsole(params.Auth, params.Catalog, params.Logger, os.Stdin, os.Stdout)
	c.shutdowner = params.Shutdowner

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		c.readPassword = func() ([]byte, error) {
			return term.ReadPassword(fd)
		}
	}

	return c
}

// NewConsole builds a console over arbitrary streams.
func NewConsole(
	auth usecase.AuthUsecase,
	catalog usecase.CatalogUsecase,
	logger *slog.Logger,
	in io.Reader,
	out io.Writer,
) *Console {
	return &Console{
		auth:      auth,
		catalog:   catalog,
		logger:    logger,
		in:        bufio.NewReader(in),
		out:       out,
		errColor:  color.New(color.FgRed),
		okColor:   color.New(color.FgGreen),
		infoColor: color.New(color.FgCyan),
	}
}

// Serve runs the loop until exit, end of input or a fatal error, then asks
// the container to shut down.
func (c *Console) Serve(ctx context.Context) error {
	err := c.run(ctx)

	if c.shutdowner != nil {
		var opts []fx.ShutdownOption
		if err != nil {
			opts = append(opts, fx.ExitCode(1))
		}
		if shutdownErr := c.shutdowner.Shutdown(opts...); shutdownErr != nil {
			c.logger.Warn("Shutdown request failed", slog.Any("error", shutdownErr))
		}
	}

	return err
}

func (c *Console) run(ctx context.Context) error {
	c.infoColor.Fprintln(c.out, "Product manager. Type 'help' for commands.")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := c.readLine(c.status() + "> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.println("")

				return nil
			}

			return errors.Wrap(err, "read command")
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		if cmd == "exit" || cmd == "quit" {
			c.println("Bye!")

			return nil
		}

		if err := c.dispatch(ctx, cmd, args); err != nil {
			c.errColor.Fprintf(c.out, "error: %s\n", domainerrors.MessageOf(err))
			if domainerrors.KindOf(err) == domainerrors.KindHashing {
				// The environment is broken; nothing the user types can fix it.
				return errors.Wrap(err, cmd)
			}
		}
	}
}

func (c *Console) dispatch(ctx context.Context, cmd string, args []string) error {
	ctx, log := deliverycontext.Scoped(ctx, c.logger, deliverycontext.NewRequestID(),
		slog.String("command", cmd),
	)

	var err error
	switch cmd {
	case "help":
		c.help(ctx)
	case "register":
		err = c.register(ctx)
	case "login":
		err = c.login(ctx)
	case "logout":
		err = c.logout(ctx)
	case "whoami":
		c.whoami(ctx)
	case "add":
		err = c.add(ctx)
	case "update":
		err = c.update(ctx, args)
	case "delete":
		err = c.delete(ctx, args)
	case "list", "l":
		err = c.list(ctx, strings.Join(args, " "))
	case "export":
		err = c.export(ctx, args)
	default:
		c.errColor.Fprintf(c.out, "unknown command: %s (type 'help')\n", cmd)
	}

	if err != nil {
		log.Debug("Command failed", slog.String("kind", domainerrors.KindOf(err).String()), slog.Any("error", err))
	}

	return err
}

func (c *Console) status() string {
	if user, ok := c.auth.CurrentUser(context.Background()); ok {
		return prompt + " [" + user.Username + "]"
	}

	return prompt
}

func (c *Console) help(ctx context.Context) {
	if _, ok := c.auth.CurrentUser(ctx); !ok {
		c.println("Commands: register, login, whoami, help, exit")

		return
	}

	c.println("Commands:")
	c.println("  list [query]   show your products, optionally filtered")
	c.println("  add            add a product")
	c.println("  update <id>    edit a product")
	c.println("  delete <id>    remove a product")
	c.println("  export [key]   write your products to the export bucket")
	c.println("  whoami         show the logged in user")
	c.println("  logout         end the session")
	c.println("  exit           leave the program")
}
