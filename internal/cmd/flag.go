// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"
)

const (
	name = "npack"

	usageMessage = `Usage of 'npack':
    npack [flags...] [entry] [appargs...]

Running a packaged application:
	npack -snapshot app.cpio main.go -flagForApp=3

Applying pending migrations and exiting:
	npack -snapshot app.cpio -db app.db -migrate

All npack flags can also be provided via environment variable NPACK_ARGS:
	NPACK_ARGS="-snapshot=app.cpio -debug" npack main.go

All npack flags can also be provided via file ./.npack-args, with one
argument per line. Settings not given as flags are read from
npack.config.json.
`
)

type flags struct {
	flagSet *flag.FlagSet

	snapshotPath string
	basePrefix   string
	configFile   string
	dsn          string
	migrateOnly  bool

	version bool
	debug   bool

	entry   string
	appArgs []string
}

func parseArgs(args []string, output io.Writer) (*flags, error) {
	flags := &flags{
		configFile: defaultConfigFile,
	}

	flags.initFlagset(output)

	err := flags.parse(args)
	if err != nil {
		return nil, err
	}

	return flags, nil
}

func (f *flags) parse(args []string) error {
	// Parses arguments up to the first one that is not prefixed with a "-" or
	// is "--".
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	positionalArgs := f.flagSet.Args()

	// First positional argument is the entry module reference. It may be
	// omitted if the project config provides one.
	if len(positionalArgs) > 0 {
		f.entry = positionalArgs[0]
		f.appArgs = positionalArgs[1:]
	}

	return nil
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.StringVar(
		&f.snapshotPath,
		"snapshot",
		f.snapshotPath,
		"path to the snapshot file (.json asset map or .cpio archive)",
	)

	flagSet.StringVar(
		&f.basePrefix,
		"base",
		f.basePrefix,
		"build-time path prefix to strip from snapshot paths",
	)

	flagSet.StringVar(
		&f.configFile,
		"config",
		f.configFile,
		"path to the project config file",
	)

	flagSet.StringVar(
		&f.dsn,
		"db",
		f.dsn,
		"database DSN for migrations",
	)

	flagSet.BoolVar(
		&f.migrateOnly,
		"migrate",
		f.migrateOnly,
		"apply pending migrations and exit",
	)

	flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
