package model

// VoicedChord annotates a chord event with concrete MIDI note numbers
// for each hand. RightHand always holds a root position triad in
// ascending order; LeftHand holds at most one bass note.
type VoicedChord struct {
	Event     ChordEvent
	RightHand []uint8
	LeftHand  []uint8
}
