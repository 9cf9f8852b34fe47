package datesim

import "github.com/vovakirdan/datesim/internal/cast"

// AssetKey maps a character to its portrait asset key.
func AssetKey(k cast.Kind) string {
	return "portraits/" + k.String()
}

var portraits = map[string][]string{
	"portraits/janitor_joe": {
		" .---. ",
		" (o_o) ",
		" /|=|\\ ",
	},
	"portraits/old_lady": {
		" (@@@) ",
		" (o.o) ",
		" /)~(\\ ",
	},
	"portraits/twin1": {
		"  \\|/  ",
		" (>_<) ",
		"  /|\\  ",
	},
	"portraits/twin2": {
		"  \\|/  ",
		" (<_>) ",
		"  /|\\  ",
	},
	"portraits/cat": {
		" /\\_/\\ ",
		"( o.o )",
		" > ^ < ",
	},
}

var unknownPortrait = []string{
	"  ???  ",
	" (._.) ",
	"  /|\\  ",
}

// portrait returns the glyph lines for a character.
func portrait(k cast.Kind) []string {
	if p, ok := portraits[AssetKey(k)]; ok {
		return p
	}
	return unknownPortrait
}
