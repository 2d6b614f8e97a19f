package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ayhanyalcinsoy/qterminal/internal/hotkey"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title     string
	Condition string // Empty for always shown, "drop" for the overlay only, "!drop" for normal windows
	Bindings  []Keybinding
}

// Action names used by the menu, the key router and the [shortcuts] table.
const (
	ActionAddTab          = "add_tab"
	ActionCloseTab        = "close_tab"
	ActionSplitHorizontal = "split_horizontal"
	ActionSplitVertical   = "split_vertical"
	ActionCollapse        = "collapse_subterminal"
	ActionNextSub         = "next_subterminal"
	ActionPrevSub         = "prev_subterminal"
	ActionNextTab         = "next_tab"
	ActionPrevTab         = "prev_tab"
	ActionMoveTabLeft     = "move_tab_left"
	ActionMoveTabRight    = "move_tab_right"
	ActionCopy            = "copy_selection"
	ActionPaste           = "paste_clipboard"
	ActionToggleBorder    = "toggle_borderless"
	ActionToggleTabBar    = "toggle_tabbar"
	ActionTabsTop         = "tabs_top"
	ActionTabsBottom      = "tabs_bottom"
	ActionTabsLeft        = "tabs_left"
	ActionTabsRight       = "tabs_right"
	ActionScrollbarNone   = "scrollbar_none"
	ActionScrollbarLeft   = "scrollbar_left"
	ActionScrollbarRight  = "scrollbar_right"
	ActionKeepOpen        = "toggle_keep_open"
	ActionToggleDrop      = "toggle_dropdown"
	ActionLogs            = "toggle_logs"
	ActionReload          = "reload_preferences"
	ActionMenu            = "toggle_menu"
	ActionAbout           = "about"
	ActionQuit            = "quit"
)

// ActionDescriptions maps every action to its menu label.
var ActionDescriptions = map[string]string{
	ActionAddTab:          "New tab",
	ActionCloseTab:        "Close tab",
	ActionSplitHorizontal: "Split terminal horizontally",
	ActionSplitVertical:   "Split terminal vertically",
	ActionCollapse:        "Collapse subterminal",
	ActionNextSub:         "Next subterminal",
	ActionPrevSub:         "Previous subterminal",
	ActionNextTab:         "Next tab",
	ActionPrevTab:         "Previous tab",
	ActionMoveTabLeft:     "Move tab left",
	ActionMoveTabRight:    "Move tab right",
	ActionCopy:            "Copy selection",
	ActionPaste:           "Paste clipboard",
	ActionToggleBorder:    "Toggle borderless",
	ActionToggleTabBar:    "Toggle tab bar",
	ActionTabsTop:         "Tabs on top",
	ActionTabsBottom:      "Tabs on bottom",
	ActionTabsLeft:        "Tabs on left",
	ActionTabsRight:       "Tabs on right",
	ActionScrollbarNone:   "No scrollbar",
	ActionScrollbarLeft:   "Scrollbar on left",
	ActionScrollbarRight:  "Scrollbar on right",
	ActionKeepOpen:        "Keep open",
	ActionToggleDrop:      "Show/hide drop-down",
	ActionLogs:            "Toggle log viewer",
	ActionReload:          "Reload preferences",
	ActionMenu:            "Toggle menu",
	ActionAbout:           "About",
	ActionQuit:            "Quit",
}

// DefaultShortcuts are the built-in bindings. Actions without an entry are
// reachable from the menu only. Legacy terminals cannot report ctrl+shift
// on letters, so the defaults stick to alt and ctrl combinations.
var DefaultShortcuts = map[string][]string{
	ActionAddTab:          {"alt+t"},
	ActionCloseTab:        {"alt+w"},
	ActionSplitHorizontal: {"alt+h"},
	ActionSplitVertical:   {"alt+j"},
	ActionCollapse:        {"alt+x"},
	ActionNextSub:         {"alt+]"},
	ActionPrevSub:         {"alt+["},
	ActionNextTab:         {"ctrl+pgdown", "alt+right"},
	ActionPrevTab:         {"ctrl+pgup", "alt+left"},
	ActionMoveTabLeft:     {"alt+shift+left"},
	ActionMoveTabRight:    {"alt+shift+right"},
	ActionCopy:            {"alt+c"},
	ActionPaste:           {"alt+v"},
	ActionToggleBorder:    {"alt+b"},
	ActionToggleTabBar:    {"alt+m"},
	ActionKeepOpen:        {"alt+k"},
	ActionReload:          {"alt+r"},
	ActionLogs:            {"alt+l"},
	ActionMenu:            {"f10"},
	ActionQuit:            {"ctrl+q"},
}

// actionOrder is the menu order.
var actionOrder = []string{
	ActionAddTab, ActionCloseTab,
	ActionSplitHorizontal, ActionSplitVertical, ActionCollapse,
	ActionNextSub, ActionPrevSub,
	ActionNextTab, ActionPrevTab, ActionMoveTabLeft, ActionMoveTabRight,
	ActionCopy, ActionPaste,
	ActionToggleBorder, ActionToggleTabBar,
	ActionTabsTop, ActionTabsBottom, ActionTabsLeft, ActionTabsRight,
	ActionScrollbarNone, ActionScrollbarLeft, ActionScrollbarRight,
	ActionKeepOpen, ActionToggleDrop,
	ActionReload, ActionLogs, ActionMenu, ActionAbout, ActionQuit,
}

// Actions returns every action name in menu order.
func Actions() []string {
	return slices.Clone(actionOrder)
}

// KeybindRegistry resolves actions to keys and keys to actions, merging the
// defaults with the user's [shortcuts] overrides.
type KeybindRegistry struct {
	actionToKeys map[string][]hotkey.Sequence
	keyToAction  map[hotkey.Sequence]string
	custom       map[string]bool
	errs         []error
}

// NewKeybindRegistry builds a registry from cfg. Overrides for unknown
// actions and unparsable keys are skipped and reported by Err.
func NewKeybindRegistry(cfg *Config) *KeybindRegistry {
	r := &KeybindRegistry{
		actionToKeys: make(map[string][]hotkey.Sequence),
		keyToAction:  make(map[hotkey.Sequence]string),
		custom:       make(map[string]bool),
	}

	for _, action := range actionOrder {
		keys := DefaultShortcuts[action]
		if cfg != nil {
			if override, ok := cfg.Shortcuts[action]; ok {
				keys = override
				r.custom[action] = true
			}
		}
		r.bind(action, keys)
	}

	if cfg != nil {
		for action := range cfg.Shortcuts {
			if _, ok := ActionDescriptions[action]; !ok {
				r.errs = append(r.errs, fmt.Errorf("unknown action %q in [shortcuts]", action))
			}
		}
	}
	return r
}

func (r *KeybindRegistry) bind(action string, keys []string) {
	for _, k := range keys {
		seq, err := hotkey.Parse(k)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s: %w", action, err))
			continue
		}
		if seq.IsEmpty() {
			continue
		}
		if other, ok := r.keyToAction[seq]; ok {
			r.errs = append(r.errs, fmt.Errorf("%s: %s is already bound to %s", action, seq.Display(), other))
			continue
		}
		r.keyToAction[seq] = action
		r.actionToKeys[action] = append(r.actionToKeys[action], seq)
	}
}

// Err reports the problems found while building the registry.
func (r *KeybindRegistry) Err() error {
	return errors.Join(r.errs...)
}

// GetKeys returns the normalised keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	seqs := r.actionToKeys[action]
	out := make([]string, len(seqs))
	for i, s := range seqs {
		out[i] = s.String()
	}
	return out
}

// GetAction returns the action bound to key, or "" when none is.
func (r *KeybindRegistry) GetAction(key string) string {
	seq, err := hotkey.Parse(key)
	if err != nil {
		return ""
	}
	return r.keyToAction[seq]
}

// GetKeysForDisplay returns the keys of action formatted for menus.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	seqs := r.actionToKeys[action]
	parts := make([]string, len(seqs))
	for i, s := range seqs {
		parts[i] = s.Display()
	}
	return strings.Join(parts, ", ")
}

// IsCustom reports whether the user overrode the keys of action.
func (r *KeybindRegistry) IsCustom(action string) bool {
	return r.custom[action]
}

// Claim reserves every application shortcut in the hotkey registry under
// owner, so a drop-down shortcut that collides with one is reported as a
// conflict.
func (r *KeybindRegistry) Claim(reg *hotkey.Registry, owner string) error {
	var errs []error
	for seq := range r.keyToAction {
		if err := reg.Claim(seq, owner); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// GetKeybindings returns all keybinding sections for the help menu
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}

	groups := []struct {
		title     string
		condition string
		actions   []string
	}{
		{"TABS", "", []string{ActionAddTab, ActionCloseTab, ActionNextTab, ActionPrevTab, ActionMoveTabLeft, ActionMoveTabRight}},
		{"TERMINALS", "", []string{ActionSplitHorizontal, ActionSplitVertical, ActionCollapse, ActionNextSub, ActionPrevSub, ActionCopy, ActionPaste}},
		{"WINDOW", "!drop", []string{ActionToggleBorder}},
		{"DROP-DOWN", "drop", []string{ActionKeepOpen, ActionToggleDrop}},
		{"VIEW", "", []string{ActionToggleTabBar}},
		{"APPLICATION", "", []string{ActionReload, ActionLogs, ActionMenu, ActionQuit}},
	}

	sections := []KeybindingSection{}
	for _, g := range groups {
		section := KeybindingSection{Title: g.title, Condition: g.condition}
		for _, action := range g.actions {
			addBinding(&section, registry, action, ActionDescriptions[action])
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}
	return sections
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}
