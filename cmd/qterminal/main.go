// Package main implements qterminal, a lightweight terminal with a
// drop-down mode: a window that slides from the top edge of the desktop on
// a global hotkey and hides again when it loses focus.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode bool
	themeName string
)

func main() {
	var opts runOptions

	rootCmd := &cobra.Command{
		Use:   "qterminal",
		Short: "Lightweight terminal with a drop-down mode",
		Long: `qterminal - a lightweight terminal

Runs as a normal window, or with --drop as a drop-down terminal that is
shown and hidden with a global hotkey (F12 by default) and hides itself
when it loses focus unless "keep open" is pinned.`,
		Example: `  # Run as a normal window
  qterminal

  # Run as a drop-down terminal
  qterminal --drop

  # Toggle a running drop-down terminal (bind this in your desktop)
  qterminal toggle

  # Start in a directory and run a command
  qterminal -w ~/src -e htop

  # Edit configuration
  qterminal config edit`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocal(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme (overrides the config, \"none\" disables theming)")
	rootCmd.Flags().BoolVarP(&opts.drop, "drop", "d", false, "Run as a drop-down terminal")
	rootCmd.Flags().StringVarP(&opts.workdir, "workdir", "w", "", "Start session with specified work directory")
	rootCmd.Flags().StringVarP(&opts.execute, "execute", "e", "", "Execute command instead of shell")

	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Show or hide the running drop-down terminal",
		Long: `Ask the running drop-down instance to toggle its visibility

Bind this command to a global shortcut in your desktop environment when
the terminal running qterminal does not receive the hotkey itself.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleRunning(cmd.Context())
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage qterminal configuration",
		Long:  `Manage the qterminal configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the qterminal configuration file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the qterminal configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. A running qterminal picks
up the changes as soon as the file is saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	var assumeYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the qterminal configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(assumeYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect qterminal keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listKeybindings()
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCustomKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)

	rootCmd.AddCommand(toggleCmd, configCmd, keybindsCmd)

	code := 0
	runOnMainThread(func() {
		if err := fang.Execute(
			context.Background(),
			rootCmd,
			fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
		); err != nil {
			code = 1
		}
	})
	os.Exit(code)
}
