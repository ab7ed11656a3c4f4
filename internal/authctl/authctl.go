// Package authctl implements the operator command line for the auth
// service: registering accounts, checking credentials and inspecting tokens
// against the configured database without going through HTTP.
package authctl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/server/services"
	"github.com/dmitrijs2005/credkeeper/internal/validation"
)

const usage = `usage: authctl [flags] <command> [args]

commands:
  register <email>   create an account, password is read from the terminal
  login <email>      check a password and print a fresh token
  verify <token>     print the user id a token was issued for
  help               show this message`

// ErrUsage is returned for unknown commands and missing arguments.
var ErrUsage = errors.New("invalid usage")

type AuthService interface {
	Register(ctx context.Context, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
}

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type App struct {
	svc    AuthService
	tokens TokenVerifier
	fd     int
	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds an App reading from in (fd is its descriptor, used to detect a
// terminal) and writing to out.
func NewApp(svc AuthService, tokens TokenVerifier, fd int, in io.Reader, out io.Writer) *App {
	return &App{svc: svc, tokens: tokens, fd: fd, reader: bufio.NewReader(in), out: out}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	case "register":
		if len(rest) != 1 {
			return fmt.Errorf("%w: register takes exactly one email", ErrUsage)
		}
		return a.register(ctx, rest[0])
	case "login":
		if len(rest) != 1 {
			return fmt.Errorf("%w: login takes exactly one email", ErrUsage)
		}
		return a.login(ctx, rest[0])
	case "verify":
		if len(rest) != 1 {
			return fmt.Errorf("%w: verify takes exactly one token", ErrUsage)
		}
		return a.verify(rest[0])
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) register(ctx context.Context, email string) error {
	creds, err := a.readCredentials(email)
	if err != nil {
		return err
	}

	res, err := a.svc.Register(ctx, creds.Email, creds.Password)
	if err != nil {
		return describe(err)
	}

	fmt.Fprintf(a.out, "registered %s (id %s)\n", res.User.Email, res.User.ID)
	fmt.Fprintf(a.out, "token: %s\n", res.Token)
	return nil
}

func (a *App) login(ctx context.Context, email string) error {
	creds, err := a.readCredentials(email)
	if err != nil {
		return err
	}

	res, err := a.svc.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return describe(err)
	}

	fmt.Fprintf(a.out, "authenticated %s (id %s)\n", res.User.Email, res.User.ID)
	fmt.Fprintf(a.out, "token: %s\n", res.Token)
	return nil
}

// readCredentials prompts for the password and applies the same checks as
// the HTTP API, so accounts created here can always log in there.
func (a *App) readCredentials(email string) (*validation.Credentials, error) {
	password, err := getPassword(a.fd, a.reader, a.out)
	if err != nil {
		return nil, err
	}

	creds := &validation.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return creds, nil
}

func (a *App) verify(token string) error {
	userID, err := a.tokens.Verify(token)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(a.out, "user id: %s\n", userID)
	return nil
}

// describe keeps the sentinel for errors.Is but gives the operator readable
// text.
func describe(err error) error {
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		return fmt.Errorf("email already exists: %w", err)
	case errors.Is(err, common.ErrInvalidInput):
		return fmt.Errorf("password must not be empty: %w", err)
	case errors.Is(err, common.ErrInvalidCredentials):
		return fmt.Errorf("wrong email or password: %w", err)
	case errors.Is(err, common.ErrTokenExpired):
		return fmt.Errorf("token has expired: %w", err)
	case errors.Is(err, common.ErrInvalidToken):
		return fmt.Errorf("token is not valid: %w", err)
	default:
		return err
	}
}
