package model

// Chromatic pitch class names, index 0 = C.
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Quality is the detected chord quality. The detector only ever
// distinguishes major from minor triads.
type Quality uint8

const (
	Major Quality = iota
	Minor
)

func (q Quality) String() string {
	switch q {
	case Major:
		return "major"
	case Minor:
		return "minor"
	default:
		return "unknown"
	}
}

// ChordEvent is a single detected chord occurrence in the audio
// timeline. Root is a pitch class (0=C ... 11=B), times are in seconds.
type ChordEvent struct {
	Root      int
	Quality   Quality
	StartTime float64
	Duration  float64
}

// Name returns the human readable chord name, e.g. "Am" or "G".
func (e ChordEvent) Name() string {
	if e.Quality == Minor {
		return noteNames[e.Root] + "m"
	}
	return noteNames[e.Root]
}
