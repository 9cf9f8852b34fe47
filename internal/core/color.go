package core

// Color is a palette slot for a screen cell.
// Games pick a role; the platform decides the actual terminal colour.
type Color uint8

const (
	ColorDefault   Color = iota
	ColorBorder          // box outlines
	ColorHighlight       // selected character or option
	ColorSpeaker         // speaker name above a line
	ColorMission         // marker under characters with a pending mission
	ColorDead            // characters who no longer talk
	ColorFavor           // favor values
	ColorFlag            // ledger entries
	ColorDim             // hints and secondary text
	ColorTitle           // story title
)

// String returns the palette slot name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorBorder:
		return "border"
	case ColorHighlight:
		return "highlight"
	case ColorSpeaker:
		return "speaker"
	case ColorMission:
		return "mission"
	case ColorDead:
		return "dead"
	case ColorFavor:
		return "favor"
	case ColorFlag:
		return "flag"
	case ColorDim:
		return "dim"
	case ColorTitle:
		return "title"
	default:
		return "unknown"
	}
}
