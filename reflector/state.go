package reflector

// State is the playback state as last reported by the engine.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Playing
	Paused
	Stopped
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Loaded reports whether a source is ready for transport commands.
func (s State) Loaded() bool {
	switch s {
	case Ready, Playing, Paused, Stopped:
		return true
	default:
		return false
	}
}
