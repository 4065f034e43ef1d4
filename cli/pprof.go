//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/callcheck/log"
	"github.com/ardnew/callcheck/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling (${enum})" placeholder:"MODE" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                    type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(cacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

// start starts profiling if configured.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	p := profile.Make(
		profile.WithMode(f.Mode),
		profile.WithDir(f.Dir),
		profile.WithQuiet(true),
	)

	if !p.Enabled() {
		return func() {}
	}

	log.DebugContext(ctx, "pprof start",
		slog.String("mode", p.Mode),
		slog.String("dir", p.Dir),
	)

	ctrl := p.Start()

	return func() {
		ctrl.Stop()
		log.DebugContext(ctx, "pprof stop",
			slog.String("mode", p.Mode),
			slog.String("dir", p.Dir),
		)
	}
}
