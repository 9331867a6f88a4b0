package node

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Manager identifies a Node.js package manager.
type Manager string

const (
	PNPM Manager = "pnpm"
	NPM  Manager = "npm"
	Yarn Manager = "yarn"
)

// lockfiles maps each manager to its lockfile, in detection order.
var lockfiles = []struct {
	manager Manager
	file    string
}{
	{PNPM, "pnpm-lock.yaml"},
	{NPM, "package-lock.json"},
	{Yarn, "yarn.lock"},
}

// Exec returns the command that runs a package binary through m.
func (m Manager) Exec() string {
	switch m {
	case PNPM:
		return "pnpx"
	case NPM:
		return "npx"
	default:
		return string(m)
	}
}

// AddArgs returns the arguments to m that add pkgs as dependencies.
func (m Manager) AddArgs(pkgs ...string) []string {
	verb := "add"
	if m == NPM {
		verb = "i"
	}

	return append([]string{verb}, pkgs...)
}

// Detect returns the manager of the project in dir: the first manager
// whose lockfile exists in dir and whose executable is on PATH.
func Detect(dir string) (Manager, bool) {
	for _, lf := range lockfiles {
		info, err := os.Stat(filepath.Join(dir, lf.file))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		if _, err := exec.LookPath(string(lf.manager)); err == nil {
			return lf.manager, true
		}
	}

	return "", false
}

// Global returns the first of pnpm, npm, and yarn found on PATH.
func Global() (Manager, error) {
	for _, lf := range lockfiles {
		if _, err := exec.LookPath(string(lf.manager)); err == nil {
			return lf.manager, nil
		}
	}

	return "", ErrNoManager
}

// Resolve returns the manager of the project in dir, or the global manager
// if the project has none.
func Resolve(dir string) (Manager, error) {
	if m, ok := Detect(dir); ok {
		return m, nil
	}

	return Global()
}
