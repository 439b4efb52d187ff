package model

type AnalyzeRequest struct {
	Chroma           [][]float64 `json:"chroma"`
	FrameDuration    float64     `json:"frame_duration"`
	MinChordDuration *float64    `json:"min_chord_duration,omitempty"`
	SmoothingWindow  *int        `json:"smoothing_window,omitempty"`
}

type AnalyzedChord struct {
	Name      string  `json:"name"`
	Root      int     `json:"root"`
	Quality   string  `json:"quality"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
}

type AnalyzeResponse struct {
	NumFrames int             `json:"num_frames"`
	Chords    []AnalyzedChord `json:"chords"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
