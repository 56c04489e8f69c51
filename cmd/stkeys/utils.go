package stkeys

import (
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/stkeys/stkeys/internal/config"
	"github.com/stkeys/stkeys/internal/update"
	"golang.org/x/term"
)

func selfUpdate() (string, error) {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), update.Repository)
	if err != nil {
		return "", err
	}
	return latest.Version.String(), nil
}

// loadConfigs returns the local (working directory) and global file configs;
// missing files yield empty configs.
func loadConfigs() (local, global config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	if wd, err := os.Getwd(); err == nil {
		if c, err := config.LoadLocal(wd); err == nil {
			local = c
		}
	}
	return local, global
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func pickString(cli string, local, global *string, def string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return def
}

// pickInt prefers the CLI value when set, since zero is a meaningful thread
// count.
func pickInt(set bool, cli int, local, global *int, def int) int {
	if set {
		return cli
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return def
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
