package midi

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/ambersariya/tubechord/constants"
	"github.com/ambersariya/tubechord/model"
	"github.com/ambersariya/tubechord/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerQuarter = 960

// Track layout: format 1, two note tracks. Track 0 carries the left
// hand plus the tempo meta event, track 1 the right hand triads, so any
// player can mute or solo either hand.
const (
	channelRight uint8 = 0
	channelLeft  uint8 = 1
)

// Exporter writes voiced chords as a two track format 1 Standard MIDI
// File. Chord timing arrives in seconds and is converted with
// beats = seconds * (tempo / 60); one tempo scalar covers the whole
// export.
type Exporter struct {
	Tempo        int   // beats per minute
	Velocity     uint8 // right hand note on velocity
	BassVelocity uint8 // left hand note on velocity
}

func NewExporter(tempo int) Exporter {
	return Exporter{
		Tempo:        tempo,
		Velocity:     constants.DefaultVelocity,
		BassVelocity: constants.BassVelocity,
	}
}

func (e Exporter) secondsToBeats(seconds float64) float64 {
	return seconds * float64(e.Tempo) / 60.0
}

func ticks(beats float64) uint32 {
	return uint32(math.Round(beats * ticksPerQuarter))
}

// noteEvent is a note boundary at an absolute tick position.
type noteEvent struct {
	tick uint32
	off  bool
	key  uint8
}

// noteEvents flattens the voiced chords into per-hand on/off events.
// Durations that would round to zero ticks clamp to one tick so no note
// silently vanishes.
func (e Exporter) noteEvents(chords []model.VoicedChord) (left []noteEvent, right []noteEvent) {
	for _, vc := range chords {
		start := ticks(e.secondsToBeats(vc.Event.StartTime))
		duration := util.Max(uint32(1), ticks(e.secondsToBeats(vc.Event.Duration)))

		for _, key := range vc.LeftHand {
			left = append(left,
				noteEvent{tick: start, key: key},
				noteEvent{tick: start + duration, off: true, key: key})
		}
		for _, key := range vc.RightHand {
			right = append(right,
				noteEvent{tick: start, key: key},
				noteEvent{tick: start + duration, off: true, key: key})
		}
	}
	return left, right
}

// buildTrack delta-encodes note events into an SMF track. Events sort
// by tick with note offs first, then by key, which keeps identical
// input byte-for-byte reproducible.
func buildTrack(name string, notes []noteEvent, channel uint8, velocity uint8, tempo float64) smf.Track {
	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(name))
	if tempo > 0 {
		track.Add(0, smf.MetaTempo(tempo))
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].tick != notes[j].tick {
			return notes[i].tick < notes[j].tick
		}
		if notes[i].off != notes[j].off {
			return notes[i].off
		}
		return notes[i].key < notes[j].key
	})

	var last uint32
	for _, ev := range notes {
		delta := ev.tick - last
		last = ev.tick
		if ev.off {
			track.Add(delta, midi.NoteOff(channel, ev.key))
		} else {
			track.Add(delta, midi.NoteOn(channel, ev.key, velocity))
		}
	}
	track.Close(0)
	return track
}

// Export renders the ordered voiced chords to outPath. The whole file
// is assembled in memory and written atomically, so a failed export
// never leaves a truncated file behind.
func (e Exporter) Export(chords []model.VoicedChord, outPath string) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	left, right := e.noteEvents(chords)
	if err := s.Add(buildTrack("Left Hand (Bass)", left, channelLeft, e.BassVelocity, float64(e.Tempo))); err != nil {
		return fmt.Errorf("adding left hand track: %v", err)
	}
	if err := s.Add(buildTrack("Right Hand (Chords)", right, channelRight, e.Velocity, 0)); err != nil {
		return fmt.Errorf("adding right hand track: %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return fmt.Errorf("encoding midi file: %v", err)
	}
	return util.WriteFileAtomic(outPath, buf.Bytes())
}

// ReadFile parses an SMF file from disk, used by the inspect command.
func ReadFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file... %v", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file... %v", err)
	}
	return res, nil
}
