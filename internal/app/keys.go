package app

import "unicode"

// Binding maps a key to a named sim action.
type Binding struct {
	Key    rune
	Action string
	Label  string
}

// Bindings lists the injection hotkeys shared by every front-end.
var Bindings = []Binding{
	{Key: 'w', Action: "water", Label: "water"},
	{Key: 'd', Action: "soil", Label: "soil"},
	{Key: 'c', Action: "compost", Label: "compost"},
	{Key: 'k', Action: "stone", Label: "stone"},
	{Key: 'v', Action: "steam", Label: "steam"},
	{Key: 'l', Action: "cloud", Label: "cloud"},
	{Key: 'g', Action: "seed", Label: "seed"},
	{Key: 'm', Action: "worm", Label: "worm"},
	{Key: 't', Action: "time", Label: "day/night"},
}

// ActionFor returns the action bound to r, case-insensitively.
func ActionFor(r rune) (string, bool) {
	r = unicode.ToLower(r)
	for _, b := range Bindings {
		if b.Key == r {
			return b.Action, true
		}
	}
	return "", false
}
