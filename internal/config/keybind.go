package config

import (
	"strconv"
	"strings"

	"github.com/1broseidon/termtile/internal/executor"
	"github.com/1broseidon/termtile/internal/wmerr"
)

// validModifiers is the closed X11 modifier set a keybind row may name.
var validModifiers = map[string]bool{"Win": true, "Ctrl": true, "Alt": true, "Shift": true}

func buildKeybinds(raws []RawKeybind) ([]Keybind, error) {
	out := make([]Keybind, 0, len(raws))
	for i, r := range raws {
		kb, err := buildKeybind(r)
		if err != nil {
			return nil, wmerr.Wrap(wmerr.ConfigInvalid, "keybind "+strconv.Itoa(i), err)
		}
		out = append(out, kb)
	}
	return out, nil
}

func buildKeybind(r RawKeybind) (Keybind, error) {
	if strings.TrimSpace(r.Key) == "" {
		return Keybind{}, wmerr.New(wmerr.ConfigInvalid, "key is required")
	}
	if _, err := executor.Parse(r.Command, r.Args); err != nil {
		return Keybind{}, wmerr.Wrap(wmerr.ConfigInvalid, "command "+r.Command, err)
	}
	for _, m := range r.Modifiers {
		if !validModifiers[m] {
			return Keybind{}, wmerr.New(wmerr.ConfigInvalid, "unknown modifier "+m)
		}
	}
	return Keybind{Modifiers: r.Modifiers, Key: r.Key, Command: r.Command, Args: r.Args}, nil
}
