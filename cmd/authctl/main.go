package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/credkeeper/internal/authctl"
	"github.com/dmitrijs2005/credkeeper/internal/flagx"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/server"
	"github.com/dmitrijs2005/credkeeper/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)

	valueFlags := append([]string{"-c", "-config"}, config.ValueFlags...)
	args := flagx.Positional(os.Args[1:], valueFlags)

	deps, err := server.Wire(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer deps.DB.Close()

	app := authctl.NewApp(deps.UserService, deps.Tokens, int(os.Stdin.Fd()), os.Stdin, os.Stdout)
	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		code := 1
		if errors.Is(err, authctl.ErrUsage) {
			code = 2
		}
		deps.DB.Close()
		os.Exit(code)
	}

}
