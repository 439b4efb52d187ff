package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sine(freq float64, sampleRate int, seconds float64) []float64 {
	n := int(float64(sampleRate) * seconds)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.8 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return samples
}

func TestChromagramDetectsPitchClass(t *testing.T) {
	// A4 = 440 Hz = pitch class 9
	samples := sine(440, 22050, 2.0)
	signal := Chromagram(samples, 22050, 512, 2048)

	assert := assert.New(t)
	assert.Greater(signal.Frames(), 0)
	assert.InDelta(512.0/22050.0, signal.FrameDuration, 1e-12)

	mid := signal.Frames() / 2
	best := 0
	for pc := 1; pc < 12; pc++ {
		if signal.Energy[pc][mid] > signal.Energy[best][mid] {
			best = pc
		}
	}
	assert.Equal(9, best)
}

func TestChromagramValuesStayNormalized(t *testing.T) {
	samples := sine(261.63, 22050, 1.0) // C4
	signal := Chromagram(samples, 22050, 512, 2048)

	for pc := 0; pc < 12; pc++ {
		for _, v := range signal.Energy[pc] {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestChromagramShortInputHasNoFrames(t *testing.T) {
	signal := Chromagram(make([]float64, 100), 22050, 512, 2048)

	assert := assert.New(t)
	assert.Equal(0, signal.Frames())
	assert.InDelta(512.0/22050.0, signal.FrameDuration, 1e-12)
}

func TestPitchClass(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(9, pitchClass(440))
	assert.Equal(9, pitchClass(220))
	assert.Equal(0, pitchClass(261.63))
	assert.Equal(7, pitchClass(392))
}
