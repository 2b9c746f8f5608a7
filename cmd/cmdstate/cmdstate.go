// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate builds the command manager shared by the CLI commands.
// The signal handler reloads whichever manager was built last, so the active
// state is kept in a package variable.
package cmdstate

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	_ "github.com/matt-FFFFFF/switchboard/internal/allregistrars" // registrar types
	"github.com/matt-FFFFFF/switchboard/internal/binder"
	"github.com/matt-FFFFFF/switchboard/internal/config"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
	"github.com/matt-FFFFFF/switchboard/internal/events"
	"github.com/matt-FFFFFF/switchboard/internal/manager"
	"github.com/matt-FFFFFF/switchboard/internal/manifest"
	"github.com/matt-FFFFFF/switchboard/internal/registrars/builtin"
	"github.com/matt-FFFFFF/switchboard/internal/registrars/reply"
	"github.com/matt-FFFFFF/switchboard/internal/registrars/shell"
	"github.com/matt-FFFFFF/switchboard/internal/registrartypes"
	"github.com/urfave/cli/v3"
)

// Flag names shared by every command.
const (
	FileFlag       = "file"
	NamespacedFlag = "namespaced"
	LogLevelFlag   = "log-level"
	LogFormatFlag  = "log-format"
)

var (
	// ErrBuild is returned when the command manager cannot be built.
	ErrBuild = errors.New("failed to build command manager")
	// ErrManifest is returned when a manifest cannot be loaded.
	ErrManifest = errors.New("failed to load manifests")
)

// Flags are the global flags of the root command.
var Flags = []cli.Flag{
	&cli.StringSliceFlag{
		Name:    FileFlag,
		Aliases: []string{"f"},
		Usage: "Load commands from a manifest file or directory. " +
			"Supports Hashicorp's go-getter syntax for remote sources. " +
			"Specify multiple times to load multiple manifests.",
	},
	&cli.BoolFlag{
		Name:  NamespacedFlag,
		Usage: "Also offer every alias as <plugin>:<alias>",
	},
	&cli.StringFlag{
		Name:  LogLevelFlag,
		Usage: "Log level, one of DEBUG, INFO, WARN or ERROR",
	},
	&cli.StringFlag{
		Name:  LogFormatFlag,
		Usage: "Log format, pretty or json",
	},
}

type configKey struct{}

var active atomic.Pointer[State]

// Before loads the configuration from the environment, applies the global
// flags and installs the configured logger in the returned context.
func Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	if cmd.IsSet(LogLevelFlag) {
		cfg.LogLevel = cmd.String(LogLevelFlag)
	}

	if cmd.IsSet(LogFormatFlag) {
		cfg.LogFormat = cmd.String(LogFormatFlag)
	}

	if cmd.IsSet(NamespacedFlag) {
		cfg.NamespacedAliases = cmd.Bool(NamespacedFlag)
	}

	cfg.Manifests = append(cfg.Manifests, cmd.StringSlice(FileFlag)...)

	if err := cfg.Validate(); err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	logger, err := cfg.Logger(cmd.ErrWriter)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}

	ctx = ctxlog.New(ctx, logger)

	return context.WithValue(ctx, configKey{}, cfg), nil
}

// ConfigFrom returns the configuration stored by Before, or the environment
// configuration when there is none.
func ConfigFrom(ctx context.Context) (config.Config, error) {
	if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
		return cfg, nil
	}

	return config.Load()
}

// State is a built command manager and its event reporter.
type State struct {
	Config   config.Config
	Manager  *manager.Manager
	Reporter *events.ChannelReporter
}

// Build creates the command manager with every known registrar type and
// registers the commands of the configured manifests. Alias table events go
// to listener, or to the debug log when listener is nil.
//
// Manifests that cannot be loaded fail the build. Commands that cannot be
// registered, for example because their alias is taken, are logged and skipped.
func Build(ctx context.Context, listener events.Listener) (*State, error) {
	cfg, err := ConfigFrom(ctx)
	if err != nil {
		return nil, errors.Join(ErrBuild, err)
	}

	reporter := events.NewChannelReporter(ctx, cfg.EventBuffer)
	if listener == nil {
		listener = LogEvents(ctx)
	}

	reporter.Listen(listener)

	b := binder.New()
	binder.Bind(b, reply.VarsKey).ToInstance(cfg.ReplyVars)

	if cfg.Shell != "" {
		binder.Bind(b, shell.PathKey).ToInstance(cfg.Shell)
	}

	mgr := manager.New(
		manager.WithReporter(reporter),
		manager.WithBinder(b),
		manager.WithNamespacedAliases(cfg.NamespacedAliases),
	)
	binder.Bind(b, builtin.HostKey).ToInstance(mgr)

	st := &State{Config: cfg, Manager: mgr, Reporter: reporter}

	ctxlog.Debug(ctx, "registering registrar types", "types", registrartypes.DefaultRegistry.Names())

	if err := mgr.RegisterTypes(ctx, registrartypes.DefaultRegistry); err != nil {
		st.Close()
		return nil, errors.Join(ErrBuild, err)
	}

	if len(cfg.Manifests) > 0 {
		loader := manifest.Loader{FetchTimeout: cfg.FetchTimeout}

		ms, err := loader.LoadAll(ctx, cfg.Manifests)
		if err != nil {
			st.Close()
			return nil, errors.Join(ErrManifest, err)
		}

		mappings, err := manifest.ApplyAll(ctx, mgr, ms)
		if err != nil {
			ctxlog.Warn(ctx, "some manifest commands were not registered", "error", err)
		}

		ctxlog.Info(ctx, fmt.Sprintf("registered %d commands from %d manifests", len(mappings), len(ms)))
	}

	active.Store(st)

	return st, nil
}

// Close stops event delivery. The state must not be used afterwards.
func (s *State) Close() {
	active.CompareAndSwap(s, nil)
	s.Reporter.Close()
}

// Reload reloads the most recently built manager. It does nothing when no
// manager is active.
func Reload(ctx context.Context) error {
	st := active.Load()
	if st == nil {
		ctxlog.Debug(ctx, "reload requested with no active command manager")
		return nil
	}

	return st.Manager.Reload(ctx)
}

// LogEvents returns a listener that writes alias table events to the debug
// log, and conflicts and reload failures to the warning log.
func LogEvents(ctx context.Context) events.Listener {
	logger := ctxlog.Logger(ctx).With("component", "events")

	return events.ListenerFunc(func(e events.Event) {
		args := []any{"type", e.Type.String(), "alias", e.Alias, "owner", e.Owner}
		if e.Message != "" {
			args = append(args, "message", e.Message)
		}

		switch e.Type {
		case events.Conflict, events.ReloadFailed:
			logger.Warn("alias table event", args...)
		default:
			logger.Debug("alias table event", args...)
		}
	})
}
