package dialogue

import "github.com/vovakirdan/datesim/internal/core"

// Event names emitted by the machine.
const (
	EventTalkStarted      = "talk_started"
	EventTalkRejected     = "talk_rejected"
	EventTalkCancelled    = "talk_cancelled"
	EventLine             = "line"
	EventSceneCompleted   = "scene_completed"
	EventMissionCollected = "mission_collected"
	EventFlagChanged      = "flag_changed"
	EventFavorChanged     = "favor_changed"
	EventCharacterDied    = "character_died"
	EventDialogueMoved    = "dialogue_moved"
	EventChoiceOffered    = "choice_offered"
	EventOptionPicked     = "option_picked"
	EventChoiceAbandoned  = "choice_abandoned"
)

// Reserved outcome flags. Besides accumulating in the ledger they act on
// the conversation partner.
const (
	FlagFavor = "favor"
	FlagDeath = "death"
)

func event(name string, attrs ...any) core.Event {
	return core.Event{Name: name, Attrs: attrs}
}
