package voicing

import (
	"errors"
	"fmt"

	"github.com/ambersariya/tubechord/model"
)

const (
	semitonesPerOctave = 12
	rightHandOctave    = 4 // Middle C octave, C4 = MIDI 60
	leftHandOctave     = 3 // one full octave below the right hand root
)

// Root position triads: root, third, perfect fifth.
var (
	majorIntervals = []uint8{0, 4, 7}
	minorIntervals = []uint8{0, 3, 7}
)

// ErrInvalidQuality reports a chord quality the voicers cannot handle.
// The detector's two-way classification makes it unreachable in the
// normal pipeline; hitting it indicates a programming error.
var ErrInvalidQuality = errors.New("voicing: invalid chord quality")

// Strategy maps a detected chord to concrete pitches for both hands.
// Implementations must be pure functions of the event: no hidden state,
// no history across calls.
type Strategy interface {
	Voice(event model.ChordEvent) (model.VoicedChord, error)
}

// PitchToMidi converts a pitch class (0-11) and a scientific octave
// number to an absolute MIDI note: C-1 = 0, C4 (Middle C) = 60.
func PitchToMidi(pitchClass int, octave int) uint8 {
	return uint8((octave+1)*semitonesPerOctave + pitchClass)
}

func intervals(quality model.Quality) ([]uint8, error) {
	switch quality {
	case model.Major:
		return majorIntervals, nil
	case model.Minor:
		return minorIntervals, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}
}

// Foundational voices grade 1: a root position triad in the Middle C
// octave, right hand only. The right hand span never exceeds a major
// 6th above the root, well within a beginner's reach.
type Foundational struct{}

func (Foundational) Voice(event model.ChordEvent) (model.VoicedChord, error) {
	iv, err := intervals(event.Quality)
	if err != nil {
		return model.VoicedChord{}, err
	}

	root := PitchToMidi(event.Root, rightHandOctave)
	rightHand := make([]uint8, len(iv))
	for i, offset := range iv {
		rightHand[i] = root + offset
	}
	return model.VoicedChord{Event: event, RightHand: rightHand}, nil
}

// TwoHand voices grade 2 and up: the same right hand triad plus a
// single bass root one octave below, introducing hand independence.
type TwoHand struct{}

func (TwoHand) Voice(event model.ChordEvent) (model.VoicedChord, error) {
	voiced, err := Foundational{}.Voice(event)
	if err != nil {
		return model.VoicedChord{}, err
	}
	voiced.LeftHand = []uint8{PitchToMidi(event.Root, leftHandOctave)}
	return voiced, nil
}

// ForGrade returns the strategy for the requested piano grade.
func ForGrade(grade int) Strategy {
	if grade <= 1 {
		return Foundational{}
	}
	return TwoHand{}
}

// VoiceAll applies one strategy to every event, preserving order.
func VoiceAll(s Strategy, events []model.ChordEvent) ([]model.VoicedChord, error) {
	voiced := make([]model.VoicedChord, 0, len(events))
	for _, event := range events {
		vc, err := s.Voice(event)
		if err != nil {
			return nil, err
		}
		voiced = append(voiced, vc)
	}
	return voiced, nil
}
