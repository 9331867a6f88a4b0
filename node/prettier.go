package node

import (
	"bytes"
	"context"
	"os/exec"
)

// Prettify formats src with prettier as if it were the file filename in the
// project dir. Only the extension of filename matters; the file need not
// exist.
//
// prettierd is used if it is on PATH. Otherwise prettier is run through the
// executor of the project's package manager (pnpx, npx, or yarn).
func Prettify(ctx context.Context, dir string, src []byte, filename string) ([]byte, error) {
	name, args, err := prettierCommand(dir, filename)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = bytes.NewReader(src)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		out := stdout.String() + stderr.String()

		return nil, ErrFormat.Wrap(err, outputError(out))
	}

	return stdout.Bytes(), nil
}

func prettierCommand(dir, filename string) (string, []string, error) {
	if path, err := exec.LookPath("prettierd"); err == nil {
		return path, []string{filename}, nil
	}

	m, ok := Detect(dir)
	if !ok {
		return "", nil, ErrNoFormatter
	}

	return m.Exec(), []string{"prettier", "--stdin-filepath", filename}, nil
}
