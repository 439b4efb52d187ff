package model

// Chroma is an octave-collapsed harmonic energy signal: 12 pitch class
// rows by Frames() columns, values in [0,1]. The acquisition layer owns
// validation; the detector only reads it.
type Chroma struct {
	Energy        [][]float64
	FrameDuration float64 // seconds per column
}

func (c Chroma) Frames() int {
	if len(c.Energy) == 0 {
		return 0
	}
	return len(c.Energy[0])
}
