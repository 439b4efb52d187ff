package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/ambersariya/tubechord/chord"
	"github.com/ambersariya/tubechord/model"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves chord analysis over HTTP",
	Long:  `Serves chord analysis over HTTP: POST a chroma matrix to /analyze and get the detected chord events back.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// HandleAnalyze detects chords in a chroma matrix posted as JSON.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var input model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, "could not parse request body: "+err.Error(), 400)
		return
	}

	if len(input.Chroma) != 12 {
		writeError(w, fmt.Sprintf("chroma must have 12 rows, got %v", len(input.Chroma)), 400)
		return
	}
	for _, row := range input.Chroma {
		if len(row) != len(input.Chroma[0]) {
			writeError(w, "chroma rows must all have the same length", 400)
			return
		}
	}
	if input.FrameDuration <= 0 {
		writeError(w, "frame_duration must be positive", 400)
		return
	}

	detector := chord.NewDetector()
	if input.MinChordDuration != nil {
		detector.MinChordDuration = *input.MinChordDuration
	}
	if input.SmoothingWindow != nil {
		detector.SmoothingWindow = *input.SmoothingWindow
	}

	signal := model.Chroma{Energy: input.Chroma, FrameDuration: input.FrameDuration}
	events := detector.Analyze(signal)

	res := model.AnalyzeResponse{
		NumFrames: signal.Frames(),
		Chords:    make([]model.AnalyzedChord, 0, len(events)),
	}
	for _, event := range events {
		res.Chords = append(res.Chords, model.AnalyzedChord{
			Name:      event.Name(),
			Root:      event.Root,
			Quality:   event.Quality.String(),
			StartTime: event.StartTime,
			Duration:  event.Duration,
		})
	}
	json.NewEncoder(w).Encode(res)
}

func writeError(w http.ResponseWriter, detail string, code int) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: detail})
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	log.Fatal(http.ListenAndServe(":8080", cors.Default().Handler(router)))
}
