package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	moodlog "github.com/unowned-ai/moodlog/pkg"
	"github.com/unowned-ai/moodlog/pkg/config"
	pkgdb "github.com/unowned-ai/moodlog/pkg/db"
	"github.com/unowned-ai/moodlog/pkg/kv"
)

// Set with -ldflags at release time.
var (
	commit = "none"
	date   = "unknown"
)

var (
	configFile  string
	backendFlag string
	pathFlag    string
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "moodlog",
	Short: base.Wrap80("A personal mood journal for the terminal."),
	Long: base.Wrap80(`Write short mood-tagged journal entries, then filter, search and review them
from the command line, an interactive terminal UI, or an MCP client.`),
	Version:       fmt.Sprintf("v%s", moodlog.Version),
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for moodlog.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(moodlog completion bash)

  Bash (persist):
    $ moodlog completion bash > /etc/bash_completion.d/moodlog

  Zsh:
    $ moodlog completion zsh > "${fpath[1]}/_moodlog"

  Fish:
    $ moodlog completion fish | source
    $ moodlog completion fish > ~/.config/fish/completions/moodlog.fish

  PowerShell:
    PS> moodlog completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var (
	versionShort  bool
	versionOutput string
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of moodlog",
	Example: `
moodlog version
moodlog version --short
moodlog version -o yaml
`,
	Run: func(cmd *cobra.Command, args []string) {
		resp := goversion.FuncWithOutput(versionShort, moodlog.Version, commit, date, versionOutput)
		fmt.Fprint(cmd.OutOrStdout(), resp)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the sqlite storage backend",
	Long:  `Provides commands for managing the SQLite database used by the sqlite backend, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the database schema to the latest version for the kvstore component",
	Long: `Connects to the SQLite database configured for the sqlite backend (see --path and
the config file) and brings the kvstore component up to the current schema version.
If the database does not exist or is uninitialized, it is created with the latest schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.Options{File: configFile, Backend: backendFlag, Path: pathFlag})
		if err != nil {
			return err
		}
		if cfg.Backend != kv.BackendSQLite {
			return errors.New("db upgrade only applies to the sqlite backend (use --backend sqlite)")
		}

		fmt.Fprintf(os.Stderr, "Attempting to upgrade kvstore component in database at: %s (WAL: %t, Sync: %s)\n", cfg.Path, cfg.SQLiteWAL, cfg.SQLiteSync)

		dbConn, err := pkgdb.OpenDBConnection(cfg.Path, cfg.SQLiteWAL, cfg.SQLiteSync)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return pkgdb.UpgradeDB(dbConn, cfg.Path, pkgdb.TargetSchemaVersion)
	},
}

func initCmd() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: .moodlog.yaml in $MOODLOG_CONFIG_PATH, $HOME or the working directory)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", fmt.Sprintf("Storage backend, one of %s (default: diskv)", strings.Join(kv.Backends(), ", ")))
	rootCmd.PersistentFlags().StringVar(&pathFlag, "path", "", "Storage location: a directory for diskv, a database file for sqlite (uses a system-specific default if not provided)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON.")

	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "Print just the version number.")
	versionCmd.Flags().StringVarP(&versionOutput, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	dbCmd.AddCommand(dbUpgradeCmd)

	initEntriesCmd()
	initSearchCmd()
	initStatsCmd()
	initThemeCmd()
	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd, entriesCmd, searchCmd, statsCmd, themeCmd, mcpCmd, tuiCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
