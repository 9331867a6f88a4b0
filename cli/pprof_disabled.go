//go:build !pprof

package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ntro/profile"
)

// pprofConfig is empty when built without pprof tag.
type pprofConfig struct{}

func (pprofConfig) vars() kong.Vars { return kong.Vars{} }

func (pprofConfig) groups() []kong.Group { return nil }

// start is a no-op when built without pprof tag.
func (pprofConfig) start(context.Context) (stop func()) {
	return profile.Profiler{}.Start().Stop
}
