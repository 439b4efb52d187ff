package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ambersariya/tubechord/model"
)

type label struct {
	root  int
	minor bool
}

// buildChroma synthesizes a chroma matrix where every frame clearly
// expresses its label: strong root, weaker third and fifth, low floor
// everywhere else.
func buildChroma(labels []label, frameDuration float64) model.Chroma {
	energy := make([][]float64, 12)
	for pc := range energy {
		energy[pc] = make([]float64, len(labels))
	}
	for i, l := range labels {
		for pc := 0; pc < 12; pc++ {
			energy[pc][i] = 0.05
		}
		third := majorThird
		if l.minor {
			third = minorThird
		}
		energy[l.root][i] = 1.0
		energy[(l.root+third)%12][i] = 0.6
		energy[(l.root+7)%12][i] = 0.5
	}
	return model.Chroma{Energy: energy, FrameDuration: frameDuration}
}

func run(l label, frames int) []label {
	res := make([]label, frames)
	for i := range res {
		res[i] = l
	}
	return res
}

func TestAnalyzeEmptySignal(t *testing.T) {
	d := NewDetector()
	events := d.Analyze(model.Chroma{FrameDuration: 0.1})

	assert.Empty(t, events)
}

func TestClassifiesEveryRoot(t *testing.T) {
	d := NewDetector()
	d.MinChordDuration = 0

	for root := 0; root < 12; root++ {
		for _, minor := range []bool{false, true} {
			events := d.Analyze(buildChroma(run(label{root, minor}, 10), 0.1))

			assert := assert.New(t)
			assert.Len(events, 1)
			assert.Equal(root, events[0].Root)
			assert.GreaterOrEqual(events[0].Root, 0)
			assert.Less(events[0].Root, 12)
			if minor {
				assert.Equal(model.Minor, events[0].Quality)
			} else {
				assert.Equal(model.Major, events[0].Quality)
			}
		}
	}
}

func TestTieBreakLowestRootWins(t *testing.T) {
	energy := make([][]float64, 12)
	for pc := range energy {
		energy[pc] = []float64{0.1}
	}
	energy[2][0] = 0.9
	energy[7][0] = 0.9

	d := Detector{MinChordDuration: 0, SmoothingWindow: 1}
	events := d.Analyze(model.Chroma{Energy: energy, FrameDuration: 1.0})

	assert := assert.New(t)
	assert.Len(events, 1)
	assert.Equal(2, events[0].Root)
}

func TestTieBreakEqualThirdsResolveToMajor(t *testing.T) {
	energy := make([][]float64, 12)
	for pc := range energy {
		energy[pc] = []float64{0.1}
	}
	energy[0][0] = 0.9
	energy[3][0] = 0.4
	energy[4][0] = 0.4

	d := Detector{MinChordDuration: 0, SmoothingWindow: 1}
	events := d.Analyze(model.Chroma{Energy: energy, FrameDuration: 1.0})

	assert := assert.New(t)
	assert.Len(events, 1)
	assert.Equal(model.Major, events[0].Quality)
}

func TestDSharpMajorExampleFrame(t *testing.T) {
	values := []float64{0.1, 0.05, 0.1, 0.7, 0.1, 0.1, 0.05, 0.6, 0.1, 0.1, 0.05, 0.05}
	energy := make([][]float64, 12)
	for pc := range energy {
		energy[pc] = []float64{values[pc]}
	}

	d := NewDetector()
	d.MinChordDuration = 0
	events := d.Analyze(model.Chroma{Energy: energy, FrameDuration: 1.0})

	assert := assert.New(t)
	assert.Len(events, 1)
	assert.Equal(3, events[0].Root)
	assert.Equal(model.Major, events[0].Quality)
	assert.Equal("D#", events[0].Name())
}

func TestConstantRunBecomesOneEvent(t *testing.T) {
	d := NewDetector()
	events := d.Analyze(buildChroma(run(label{9, true}, 10), 0.1))

	assert := assert.New(t)
	assert.Len(events, 1)
	assert.Equal(9, events[0].Root)
	assert.Equal(model.Minor, events[0].Quality)
	assert.Equal("Am", events[0].Name())
	assert.InDelta(0.0, events[0].StartTime, 1e-9)
	assert.InDelta(1.0, events[0].Duration, 1e-9)
}

func TestMinDurationDiscardsShortRun(t *testing.T) {
	d := NewDetector()
	d.MinChordDuration = 2.0
	events := d.Analyze(buildChroma(run(label{9, true}, 10), 0.1))

	assert.Empty(t, events)
}

func TestRaisingMinDurationNeverAddsEvents(t *testing.T) {
	var labels []label
	labels = append(labels, run(label{0, false}, 6)...)
	labels = append(labels, run(label{7, false}, 4)...)
	labels = append(labels, run(label{9, true}, 10)...)
	signal := buildChroma(labels, 0.1)

	prev := -1
	for _, minDuration := range []float64{0.0, 0.3, 0.5, 1.1, 5.0} {
		d := NewDetector()
		d.MinChordDuration = minDuration
		count := len(d.Analyze(signal))
		if prev >= 0 {
			assert.LessOrEqual(t, count, prev, "min duration %v", minDuration)
		}
		prev = count
	}
}

func TestSegmentationIsIdempotent(t *testing.T) {
	var labels []label
	labels = append(labels, run(label{0, false}, 8)...)
	labels = append(labels, run(label{5, true}, 12)...)
	signal := buildChroma(labels, 0.1)

	d := NewDetector()
	first := d.Analyze(signal)
	second := d.Analyze(signal)

	assert.Equal(t, first, second)
}

func TestRunBoundariesAreExact(t *testing.T) {
	var labels []label
	labels = append(labels, run(label{0, false}, 6)...)
	labels = append(labels, run(label{7, false}, 8)...)
	labels = append(labels, run(label{9, true}, 6)...)

	d := Detector{MinChordDuration: 0, SmoothingWindow: 1}
	events := d.Analyze(buildChroma(labels, 0.1))

	assert := assert.New(t)
	assert.Len(events, 3)
	assert.Equal(7, events[1].Root)
	assert.InDelta(0.6, events[1].StartTime, 1e-9)
	assert.InDelta(0.8, events[1].Duration, 1e-9)
}

func TestSmoothingSuppressesSingleFrameTransient(t *testing.T) {
	labels := run(label{0, false}, 21)
	labels[10] = label{7, false}

	d := NewDetector()
	d.MinChordDuration = 0
	events := d.Analyze(buildChroma(labels, 0.1))

	assert := assert.New(t)
	assert.Len(events, 1)
	assert.Equal(0, events[0].Root)
	assert.InDelta(2.1, events[0].Duration, 1e-9)
}

func TestEventsAreOrderedAndNonOverlapping(t *testing.T) {
	var labels []label
	labels = append(labels, run(label{4, false}, 7)...)
	labels = append(labels, run(label{11, true}, 9)...)
	labels = append(labels, run(label{2, false}, 6)...)

	d := Detector{MinChordDuration: 0, SmoothingWindow: 1}
	events := d.Analyze(buildChroma(labels, 0.05))

	for i := 1; i < len(events); i++ {
		prevEnd := events[i-1].StartTime + events[i-1].Duration
		assert.LessOrEqual(t, prevEnd, events[i].StartTime+1e-9)
	}
}
