package chord

import (
	"github.com/ambersariya/tubechord/constants"
	"github.com/ambersariya/tubechord/model"
)

const (
	minorThird = 3 // semitones above root
	majorThird = 4
)

// Detector turns a chroma signal into a time ordered list of chord
// events.
//
// Each pitch class row is smoothed with a box filter first, to suppress
// single frame transients. Per frame, the pitch class with the highest
// energy becomes the root and the energies a minor vs. major third
// above it decide the quality. Consecutive frames with the same label
// merge into one event; runs shorter than MinChordDuration are dropped.
type Detector struct {
	MinChordDuration float64 // discard events shorter than this, seconds
	SmoothingWindow  int     // width of the box smoothing kernel, frames
}

func NewDetector() Detector {
	return Detector{
		MinChordDuration: constants.DefaultMinChordDuration,
		SmoothingWindow:  constants.DefaultSmoothingWindow,
	}
}

// smooth applies a same-length box filter along the time axis of every
// pitch class row. Samples beyond the signal boundary count as zero,
// which biases the first and last few frames toward lower energy; that
// bias is uniform across pitch classes so labels are unaffected.
func (d Detector) smooth(energy [][]float64) [][]float64 {
	w := d.SmoothingWindow
	out := make([][]float64, len(energy))
	if w <= 1 {
		for r, row := range energy {
			out[r] = append([]float64(nil), row...)
		}
		return out
	}

	// same-mode convolution: frame i averages rows[i-(w-1)+h .. i+h]
	h := (w - 1) / 2
	for r, row := range energy {
		n := len(row)
		smoothed := make([]float64, n)
		for i := 0; i < n; i++ {
			var sum float64
			for j := i + h - (w - 1); j <= i+h; j++ {
				if j >= 0 && j < n {
					sum += row[j]
				}
			}
			smoothed[i] = sum / float64(w)
		}
		out[r] = smoothed
	}
	return out
}

// classifyFrame identifies the (root, quality) label for one frame of a
// smoothed chroma matrix. Exact energy ties resolve to the lowest pitch
// class; equal third energies resolve to major.
func classifyFrame(smoothed [][]float64, frame int) (int, model.Quality) {
	root := 0
	best := smoothed[0][frame]
	for pc := 1; pc < 12; pc++ {
		if smoothed[pc][frame] > best {
			best = smoothed[pc][frame]
			root = pc
		}
	}

	minorEnergy := smoothed[(root+minorThird)%12][frame]
	majorEnergy := smoothed[(root+majorThird)%12][frame]
	if minorEnergy > majorEnergy {
		return root, model.Minor
	}
	return root, model.Major
}

// Analyze returns the chord events of a chroma signal, ordered by start
// time. An empty signal, or one where no run reaches MinChordDuration,
// yields an empty list; that is a valid "no chords detected" outcome,
// not an error.
func (d Detector) Analyze(signal model.Chroma) []model.ChordEvent {
	n := signal.Frames()
	if n == 0 {
		return nil
	}

	smoothed := d.smooth(signal.Energy)

	var events []model.ChordEvent
	currRoot, currQuality := classifyFrame(smoothed, 0)
	startFrame := 0

	for i := 1; i < n; i++ {
		root, quality := classifyFrame(smoothed, i)
		if root == currRoot && quality == currQuality {
			continue
		}
		events = d.emit(events, currRoot, currQuality, startFrame, i, signal.FrameDuration)
		currRoot, currQuality = root, quality
		startFrame = i
	}
	return d.emit(events, currRoot, currQuality, startFrame, n, signal.FrameDuration)
}

// emit closes the run [startFrame, endFrame), appending it as an event
// when it is long enough. Short runs vanish silently.
func (d Detector) emit(events []model.ChordEvent, root int, quality model.Quality, startFrame, endFrame int, frameDuration float64) []model.ChordEvent {
	duration := float64(endFrame-startFrame) * frameDuration
	if duration < d.MinChordDuration {
		return events
	}
	return append(events, model.ChordEvent{
		Root:      root,
		Quality:   quality,
		StartTime: float64(startFrame) * frameDuration,
		Duration:  duration,
	})
}
