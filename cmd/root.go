// Package cmd wires the command line: mounting, plus unmounted inspection
// of the same tree (ls, cat).
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eddieantonio/blobfs/pkg/fuse"
	"github.com/eddieantonio/blobfs/pkg/sqlutils"
)

// backend is the resolved SQL backend, shared by all subcommands.
var backend sqlutils.SQLBackend

// rootCmd represents the base command. Called with two positional args it
// mounts, same as the mount subcommand.
var rootCmd = &cobra.Command{
	Use:               "blobfs DATABASE MOUNTPOINT",
	Short:             "Mount a relational database as a read-only filesystem",
	PersistentPreRunE: setup,
	Long: `blobfs exposes the rows and columns of a relational database as a
navigable directory tree:

    /<table>/<primary-key>/<column>

Composite primary keys join their components with "," into one path
segment. Blob columns read back verbatim; every other column reads back
as UTF-8 text. The tree is read-only and nothing is cached: every
filesystem call queries the live database.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return cmd.Help()
		}
		return fuse.MountFS(args[0], args[1])
	},
}

// setup configures logging and resolves the --backend flag. Runs before
// every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))

	name := viper.GetString("backend")
	b, ok := sqlutils.AvailableBackends[name]
	if !ok {
		return fmt.Errorf("unknown backend %q (available: sqlite, mysql, postgres)", name)
	}

	backend = sqlutils.NewCachingBackend(b, viper.GetDuration("schema-cache"))
	fuse.Backend = backend

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("backend", "b", "sqlite", "SQL backend to use [sqlite|mysql|postgres]")
	pf.StringP("log-level", "l", "info", "log level [debug|info|warn|error]")
	pf.Duration("schema-cache", 0, "cache schema lookups for this long (0 disables)")

	for _, flag := range []string{"backend", "log-level", "schema-cache"} {
		if err := viper.BindPFlag(flag, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("blobfs")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
