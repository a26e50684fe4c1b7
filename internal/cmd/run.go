// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/SatoruFF/npack/internal/migrate"
	"github.com/SatoruFF/npack/internal/modload"
	"github.com/SatoruFF/npack/internal/snapshot"
	"github.com/SatoruFF/npack/internal/vfs"
)

const localConfigFile = ".npack-args"

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func newFlags(args []string, cfg IO) (*flags, error) {
	fileArgs, err := LocalConfigArgs(os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	merged := slices.Concat(EnvArgs(), fileArgs, args)

	flags, err := parseArgs(merged, cfg.Stderr)
	if err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	return flags, nil
}

func readStore(path string, opts snapshot.Options) (*snapshot.Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()

	var records []snapshot.Record

	switch filepath.Ext(path) {
	case ".json":
		records, err = snapshot.DecodeAssetMap(file)
	case ".cpio":
		records, err = snapshot.ReadArchive(file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSnapshotFormat, path)
	}

	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	store, err := snapshot.New(records, opts)
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}

	return store, nil
}

func runMigrations(
	ctx context.Context,
	dsn string,
	config *Config,
	store *snapshot.Store,
	loader *modload.Loader,
	cfg IO,
) error {
	// Without a configured scripts directory, fall back to the packaged
	// migrations namespace.
	dir := config.Scripts
	if dir == "" {
		dir = snapshot.MigrationsSegment
	}

	client, err := migrate.NewClient(migrate.Config{
		DSN:       dsn,
		Directory: dir,
		Store:     store,
		Loader:    loader,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	ran, err := client.Up(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cfg.Stdout, "Applied %d migrations\n", len(ran))

	return nil
}

// invokeMain runs the entry module's exported Main procedure.
func invokeMain(module *modload.Module, args []string) error {
	value, ok := module.Exports.Value("Main")
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoMainExport, module.Key)
	}

	switch fn := value.Interface().(type) {
	case func([]string) error:
		return fn(args)
	case func() error:
		return fn()
	case func():
		fn()
		return nil
	default:
		return fmt.Errorf("%w: Main is %T", ErrBadMainExport, value.Interface())
	}
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	config, err := ReadConfig(flags.configFile)
	if err != nil {
		return err
	}

	err = config.ApplyEnv()
	if err != nil {
		return err
	}

	snapshotPath := flags.snapshotPath
	if snapshotPath == "" {
		snapshotPath = config.Assets
	}

	if snapshotPath == "" {
		return ErrNoSnapshot
	}

	store, err := readStore(snapshotPath, snapshot.Options{
		BasePrefix: flags.basePrefix,
	})
	if err != nil {
		return err
	}

	slog.Debug("Loaded snapshot",
		slog.String("path", snapshotPath),
		slog.Int("paths", store.Len()))

	// The scripts run by this launch observe the snapshot through fsys; the
	// install publishes the same capability process-wide.
	fsys := vfs.New(store, os.DirFS("/"))
	vfs.Install(fsys)

	loader := modload.NewWithFS(store, fsys)

	dsn := flags.dsn
	if dsn == "" {
		dsn = config.DBConnection
	}

	if flags.migrateOnly {
		if dsn == "" {
			return ErrNoDatabase
		}

		return runMigrations(ctx, dsn, config, store, loader, cfg)
	}

	entry := flags.entry
	if entry == "" {
		entry = config.Entry
	}

	if entry == "" {
		return ErrNoEntry
	}

	module, err := loader.LoadPath(entry)
	if err != nil {
		return fmt.Errorf("load entry module: %w", err)
	}

	slog.Debug("Running entry module", slog.String("module", module.Key))

	return invokeMain(module, flags.appArgs)
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// parseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	var execErr *modload.ExecError
	if errors.As(err, &execErr) {
		slog.Error("Module execution failed",
			slog.String("module", execErr.Key),
			slog.Any("error", execErr.Err))

		return -1
	}

	slog.Error(err.Error())

	return -1
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	flags, err := newFlags(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.debug)

	err = run(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return 0
}
