package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/ayhanyalcinsoy/qterminal/internal/config"
	"github.com/ayhanyalcinsoy/qterminal/internal/theme"
	"github.com/charmbracelet/log"
)

// openStore loads the preferences for the CLI subcommands, which report
// problems on stderr rather than in the log file.
func openStore() (*config.Store, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	return config.Open(logger)
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	store, err := openStore()
	if store == nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	configPath := store.Path()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if err := store.Save(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults(assumeYes bool) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	return resetConfigAt(config.NewStore(configPath, nil), os.Stdin, os.Stdout, assumeYes)
}

func resetConfigAt(store *config.Store, in io.Reader, out io.Writer, assumeYes bool) error {
	configPath := store.Path()
	if _, err := os.Stat(configPath); err == nil && !assumeYes {
		fmt.Fprintf(out, "Warning: This will overwrite your existing configuration at:\n")
		fmt.Fprintf(out, "  %s\n\n", configPath)
		fmt.Fprintf(out, "Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		_, _ = fmt.Fscanln(in, &response)
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	if err := store.Reset(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "Configuration reset to defaults\n")
	fmt.Fprintf(out, "  Location: %s\n", configPath)
	fmt.Fprintln(out, "\nYou can customize it with: qterminal config edit")
	return nil
}

// initCLITheme applies the configured theme to the CLI tables.
func initCLITheme(store *config.Store) {
	name := themeName
	if name == "" && store != nil {
		name = store.Theme()
	}
	theme.Initialize(name)
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.CLITableKey()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			}
			return cellStyle
		})
}

// listKeybindings prints all configured keybindings in a pretty table
func listKeybindings() error {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Using default keybindings...")
	}
	initCLITheme(store)

	var cfg *config.Config
	if store != nil && err == nil {
		cfg = store.Config()
	}
	registry := config.NewKeybindRegistry(cfg)
	if err := registry.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	dropKey := config.DefaultDropShortcut
	if store != nil {
		dropKey = store.DropShortcut().Display()
	}
	fmt.Print(renderKeybindings(registry, dropKey))
	return nil
}

func renderKeybindings(registry *config.KeybindRegistry, dropKey string) string {
	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader())
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableKey())
	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim()).Italic(true)

	b.WriteString("\n" + titleStyle.Render("qterminal Keybindings") + "\n\n")

	for _, section := range config.GetKeybindings(registry) {
		t := newTable("Keys", "Action")
		for _, kb := range section.Bindings {
			t.Row(kb.Key, kb.Description)
		}
		title := section.Title
		switch section.Condition {
		case "drop":
			title += dim.Render(" (drop-down only)")
		case "!drop":
			title += dim.Render(" (normal window only)")
		}
		b.WriteString(sectionStyle.Render(title) + "\n")
		b.WriteString(t.Render() + "\n\n")
	}

	var menuOnly []string
	for _, action := range config.Actions() {
		if len(registry.GetKeys(action)) == 0 {
			menuOnly = append(menuOnly, config.ActionDescriptions[action])
		}
	}
	if len(menuOnly) > 0 {
		b.WriteString(dim.Render("Menu only: "+strings.Join(menuOnly, ", ")) + "\n")
	}
	b.WriteString(dim.Render(fmt.Sprintf("Drop-down toggle: %s (set [drop] shortcut to change it)", dropKey)) + "\n\n")
	return b.String()
}

// Customization represents a customized keybinding
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

// findCustomizations finds all keybindings that differ from defaults
func findCustomizations(registry *config.KeybindRegistry) []Customization {
	defaults := config.NewKeybindRegistry(nil)
	var out []Customization
	for _, action := range config.Actions() {
		if !registry.IsCustom(action) {
			continue
		}
		if slices.Equal(registry.GetKeys(action), defaults.GetKeys(action)) {
			continue
		}
		custom := registry.GetKeysForDisplay(action)
		if custom == "" {
			custom = "(unbound)"
		}
		def := defaults.GetKeysForDisplay(action)
		if def == "" {
			def = "(none)"
		}
		out = append(out, Customization{
			Action:      config.ActionDescriptions[action],
			DefaultKeys: def,
			CustomKeys:  custom,
		})
	}
	return out
}

// listCustomKeybindings shows only the keybindings that differ from defaults
func listCustomKeybindings() error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	initCLITheme(store)

	customizations := findCustomizations(config.NewKeybindRegistry(store.Config()))
	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim())

	if len(customizations) == 0 {
		fmt.Println(dim.Render("No custom keybindings configured. All keybindings are using defaults."))
		fmt.Println()
		fmt.Println("Run 'qterminal keybinds list' to see all keybindings.")
		return nil
	}

	t := newTable("Action", "Default", "Custom")
	for _, c := range customizations {
		t.Row(c.Action, c.DefaultKeys, c.CustomKeys)
	}

	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Render("Custom Keybindings"))
	fmt.Println()
	fmt.Println(t.Render())
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Foreground(theme.CLITableKey()).Render(fmt.Sprintf("Found %d customized keybinding(s)", len(customizations))))
	fmt.Println()
	return nil
}
