package node

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/ardnew/ntro/pkg"
)

// manifest is the subset of package.json read by [Missing].
type manifest struct {
	Dependencies map[string]string `json:"dependencies"`
}

// Missing returns the packages of pkgs not listed in the dependencies of
// dir/package.json.
func Missing(dir string, pkgs ...string) ([]string, error) {
	path := filepath.Join(dir, "package.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	data, err = hujson.Standardize(data)
	if err != nil {
		return nil, pkg.ErrJSONDecode.Wrap(err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, pkg.ErrJSONDecode.Wrap(err)
	}

	var missing []string

	for _, p := range pkgs {
		if _, ok := m.Dependencies[p]; !ok {
			missing = append(missing, p)
		}
	}

	return missing, nil
}

// Install adds the packages of pkgs missing from dir/package.json with the
// project's package manager, or the global one. It returns the packages
// it installed.
func Install(ctx context.Context, dir string, pkgs ...string) ([]string, error) {
	missing, err := Missing(dir, pkgs...)
	if err != nil || len(missing) == 0 {
		return nil, err
	}

	m, err := Resolve(dir)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, string(m), m.AddArgs(missing...)...)
	cmd.Dir = dir

	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, ErrInstall.Wrap(err, outputError(string(out)))
	}

	return missing, nil
}
