package node

import (
	"errors"
	"strings"

	"github.com/ardnew/ntro/pkg"
)

var (
	// ErrNoManager is returned when none of pnpm, npm, or yarn is available.
	ErrNoManager = pkg.MakeErrorf("no package manager found (pnpm, npm, yarn)")
	// ErrNoFormatter is returned when neither prettierd nor a project
	// package manager can run prettier.
	ErrNoFormatter = pkg.MakeErrorf("no prettier executable found")
	// ErrFormat is returned when prettier exits with an error.
	ErrFormat = pkg.MakeErrorf("prettier failed")
	// ErrInstall is returned when the package manager fails to install.
	ErrInstall = pkg.MakeErrorf("package installation failed")
	// ErrTSConfig is returned when tsconfig.json cannot be updated.
	ErrTSConfig = pkg.MakeErrorf("failed to update tsconfig.json")
)

// outputError returns the trimmed output of a failed command as an error,
// or nil if there was none.
func outputError(out string) error {
	if out = strings.TrimSpace(out); out != "" {
		return errors.New(out)
	}

	return nil
}
