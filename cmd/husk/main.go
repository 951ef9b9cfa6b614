package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/kr/pretty"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/husklang/husk/pkg/husk"
	"github.com/husklang/husk/pkg/stdlib"
)

// Config holds the application configuration
type Config struct {
	Debug   bool
	Profile string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "husk [flags] [file]",
		Short: "Husk language interpreter",
		Long: `Husk is a minimal untyped expression language: integers, #f, user
functions and whatever native functions the host registers. Scoping is
dynamic: a call snapshots the caller's entire environment.`,
		Example: `  # Run a Husk script
  husk script.husk

  # Start interactive REPL
  husk

  # Run with debug logging enabled
  husk --debug script.husk`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.Debug)

			if cfg.Profile != "" {
				stop, err := startProfile(cfg.Profile)
				if err != nil {
					return err
				}
				defer stop()
			}

			if len(args) == 1 {
				return runScript(cmd.Context(), cfg, args[0])
			}
			return runREPL(cmd.Context(), cfg)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&cfg.Profile, "profile", "", "Write a profile on exit (cpu or mem)")

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))
}

func startProfile(mode string) (func(), error) {
	switch mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop, nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q (want cpu or mem)", mode)
	}
}

func runScript(ctx context.Context, cfg Config, path string) error {
	env := husk.NewEnv()
	stdlib.Install(env, stdlib.WithOutput(os.Stdout))

	if err := preload(ctx, filepath.Dir(path), env); err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	nodes, err := husk.Parse(path, string(src))
	if err != nil {
		var synErr *husk.SyntaxError
		if errors.As(err, &synErr) {
			return errors.New(synErr.Excerpt(string(src)))
		}
		return err
	}

	if cfg.Debug {
		slog.Debug("parsed program", "ast", pretty.Sprint(nodes))
	}

	val, err := husk.EvalProgram(ctx, nodes, env)
	if err != nil {
		return err
	}

	// Scripts whose last expression is a value worth seeing get it
	// echoed; a trailing Define or print stays quiet.
	if _, isVoid := val.(husk.VoidValue); !isVoid {
		fmt.Println(val)
	}
	return nil
}

// preload evaluates the husk.toml preload scripts (if any) into env.
// The search starts at dir and walks up to a .git boundary.
func preload(ctx context.Context, dir string, env *husk.Env) error {
	configPath, config, err := husk.FindProjectConfig(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load husk.toml: %v\n", err)
		return nil
	}
	if config == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	for _, script := range config.Preload {
		path := script
		if !filepath.IsAbs(path) {
			path = filepath.Join(configDir, path)
		}
		if _, err := husk.RunFile(ctx, path, env); err != nil {
			return errors.Wrapf(err, "preload %s", script)
		}
		slog.Debug("preloaded script", "path", path)
	}
	return nil
}
