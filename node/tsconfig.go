package node

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/ardnew/ntro/pkg"
)

// TSConfig is the file name of the TypeScript project configuration.
const TSConfig = "tsconfig.json"

type patchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// AddPath maps the import alias to target in the compilerOptions.paths of
// dir/tsconfig.json, creating compilerOptions and paths as needed. An
// existing mapping for alias is replaced. Comments in the file are kept.
func AddPath(dir, alias, target string) error {
	path := filepath.Join(dir, TSConfig)

	info, err := os.Stat(path)
	if err != nil {
		return pkg.ErrReadInput.Wrap(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkg.ErrReadInput.Wrap(err)
	}

	v, err := hujson.Parse(data)
	if err != nil {
		return ErrTSConfig.Wrap(err)
	}

	var ops []patchOp

	for _, ptr := range []string{"/compilerOptions", "/compilerOptions/paths"} {
		if v.Find(ptr) == nil {
			ops = append(ops, patchOp{Op: "add", Path: ptr, Value: map[string]any{}})
		}
	}

	ops = append(ops, patchOp{
		Op:    "add",
		Path:  "/compilerOptions/paths/" + escapePointer(alias),
		Value: []string{target},
	})

	patch, err := json.Marshal(ops)
	if err != nil {
		return pkg.ErrJSONMarshal.Wrap(err)
	}

	if err := v.Patch(patch); err != nil {
		return ErrTSConfig.Wrap(err)
	}

	v.Format()

	if err := os.WriteFile(path, v.Pack(), info.Mode().Perm()); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(token string) string {
	return pointerEscaper.Replace(token)
}
