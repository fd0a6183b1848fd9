// Command parfumctl is the operator tool of the studio: it imports catalog
// spreadsheets, audits stored compositions and submits compositions through
// the REST API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"parfumerie/internal/config"
	"parfumerie/internal/db"
	"parfumerie/internal/db/mock"
	applog "parfumerie/internal/log"
	"parfumerie/internal/repository"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// store is the opened database together with the composition rules the
// server is configured with.
type store struct {
	db           *gorm.DB
	compositions []repository.CompositionOption
}

// openStoreFunc opens the configured store. Tests replace it with a
// temporary database.
var openStoreFunc = func(ctx context.Context) (store, error) {
	cfg, err := config.Load()
	if err != nil {
		return store{}, fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return store{}, err
	}
	opts := []repository.CompositionOption{repository.WithTotalEnforcement(cfg.Composition.EnforceTotal)}

	var database *gorm.DB
	if cfg.Database.UseMock {
		database, err = mock.New(ctx)
	} else {
		database, err = db.Configure(cfg.Database)
	}
	if err != nil {
		return store{}, err
	}
	return store{db: database, compositions: opts}, nil
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(stderr, "Error:", ee.msg)
			return ee.code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "parfumctl",
		Short:         "Operate the parfumerie studio",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newImportCmd(), newAuditCmd(), newCompositionCmd())
	return root
}

// withStore opens the store for the duration of fn.
func withStore(ctx context.Context, fn func(store) error) error {
	s, err := openStoreFunc(ctx)
	if err != nil {
		return codeError(3, "open database: %s", err)
	}
	defer func() { _ = db.Close(s.db) }()
	return fn(s)
}
