package repomanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/credkeeper/internal/logging"
)

// gooseLogger adapts logging.Logger to goose.Logger.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Info(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf keeps the log.Fatalf contract goose relies on.
func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(l.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
