package audio

import (
	"math"
	"os"

	"github.com/ambersariya/tubechord/model"
	"github.com/faiface/beep/wav"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/pkg/errors"
)

// Frequencies outside this band contribute mostly percussion and hiss,
// not harmonic content.
const (
	minChromaFreq = 65.0 // just below C2
	maxChromaFreq = 2100.0
)

// ExtractChroma decodes a WAV file and computes its chroma STFT.
func (p *Processor) ExtractChroma(path string) (model.Chroma, error) {
	samples, sampleRate, err := p.readWav(path)
	if err != nil {
		return model.Chroma{}, err
	}
	return Chromagram(samples, sampleRate, p.HopLength, p.FFTSize), nil
}

// readWav decodes a WAV file to mono float64 samples.
func (p *Processor) readWav(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "opening audio file")
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, 0, errors.Wrap(err, "decoding wav")
	}
	defer streamer.Close()

	total := streamer.Len()
	samples := make([]float64, 0, total)
	buf := make([][2]float64, 2048)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			samples = append(samples, (buf[i][0]+buf[i][1])/2)
		}
		if p.Progress != nil {
			p.Progress(len(samples), total)
		}
		if !ok {
			break
		}
	}
	return samples, int(format.SampleRate), nil
}

// Chromagram slices samples into hopLength-spaced frames of fftSize
// samples, Hann windows each frame, and folds FFT magnitudes into 12
// pitch class bins. Frames are max normalized so energies land in
// [0,1], the range the detector expects.
func Chromagram(samples []float64, sampleRate, hopLength, fftSize int) model.Chroma {
	numFrames := 0
	if len(samples) >= fftSize {
		numFrames = (len(samples)-fftSize)/hopLength + 1
	}

	energy := make([][]float64, 12)
	for pc := range energy {
		energy[pc] = make([]float64, numFrames)
	}

	binFreqs := make([]float64, fftSize/2+1)
	for bin := range binFreqs {
		binFreqs[bin] = float64(bin) * float64(sampleRate) / float64(fftSize)
	}

	frame := make([]float64, fftSize)
	for fi := 0; fi < numFrames; fi++ {
		pos := fi * hopLength
		copy(frame, samples[pos:pos+fftSize])
		window.Apply(frame, window.Hann)
		spectrum := fft.FFTReal(frame)

		col := make([]float64, 12)
		for bin, freq := range binFreqs {
			if freq < minChromaFreq || freq > maxChromaFreq {
				continue
			}
			re := real(spectrum[bin])
			im := imag(spectrum[bin])
			col[pitchClass(freq)] += math.Sqrt(re*re + im*im)
		}

		var peak float64
		for _, v := range col {
			if v > peak {
				peak = v
			}
		}
		for pc, v := range col {
			if peak > 0 {
				v /= peak
			}
			energy[pc][fi] = v
		}
	}

	return model.Chroma{
		Energy:        energy,
		FrameDuration: float64(hopLength) / float64(sampleRate),
	}
}

// pitchClass maps a frequency to its nearest chromatic pitch class,
// tuned to A440.
func pitchClass(freq float64) int {
	midiNote := int(math.Round(12*math.Log2(freq/440.0) + 69))
	pc := midiNote % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}
