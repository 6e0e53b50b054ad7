package core

// Event is something noteworthy that happened during a simulation tick.
// The platform reacts to events (sound cues, round history) without
// inspecting game internals.
type Event int

const (
	EventNone         Event = iota
	EventRoundStart         // Idle -> Active transition
	EventFlap               // Jump impulse applied
	EventSpawn              // Obstacle pair spawned
	EventCrash              // Active -> Idle transition
	EventNewHighScore       // Round beat the stored high score
	EventSaveFailed         // High score could not be persisted
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "None"
	case EventRoundStart:
		return "RoundStart"
	case EventFlap:
		return "Flap"
	case EventSpawn:
		return "Spawn"
	case EventCrash:
		return "Crash"
	case EventNewHighScore:
		return "NewHighScore"
	case EventSaveFailed:
		return "SaveFailed"
	default:
		return "Unknown"
	}
}
