package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/gosuri/uilive"
	"github.com/spf13/cobra"

	"github.com/ambersariya/tubechord/audio"
	"github.com/ambersariya/tubechord/chord"
	"github.com/ambersariya/tubechord/constants"
	"github.com/ambersariya/tubechord/db"
	"github.com/ambersariya/tubechord/midi"
	"github.com/ambersariya/tubechord/model"
	"github.com/ambersariya/tubechord/util"
	"github.com/ambersariya/tubechord/voicing"
)

var (
	extractGrade       int
	extractTempo       int
	extractMinDuration float64
	extractOutput      string
)

func init() {
	extractCmd.Flags().IntVar(&extractGrade, "grade", constants.DefaultGrade,
		fmt.Sprintf("piano grade level (1-%v, ABRSM scale); grade 1 is right hand only", constants.MaxGrade))
	extractCmd.Flags().IntVar(&extractTempo, "tempo", constants.DefaultTempo, "playback tempo in BPM")
	extractCmd.Flags().Float64Var(&extractMinDuration, "min-duration", constants.DefaultMinChordDuration,
		"minimum chord duration in seconds; raise for noisy audio")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "destination MIDI file path (defaults to <video-title>.mid)")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <url|wav-path>",
	Short: "Extracts chords and writes a MIDI file",
	Long:  `Extracts chords from a YouTube URL or a local WAV file and writes them as a beginner oriented two hand MIDI score.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Extract(args[0], extractGrade, extractTempo, extractMinDuration, extractOutput)
	},
}

// Extract runs the full pipeline: acquire a chroma signal from source
// (YouTube URL or local .wav path), detect chords, voice them for the
// grade and write the two track MIDI file.
func Extract(source string, grade int, tempo int, minDuration float64, output string) error {
	if tempo < constants.MinTempo || tempo > constants.MaxTempo {
		return fmt.Errorf("tempo %v out of range (%v-%v)", tempo, constants.MinTempo, constants.MaxTempo)
	}
	if grade < 1 || grade > constants.MaxGrade {
		return fmt.Errorf("grade %v out of range (1-%v)", grade, constants.MaxGrade)
	}

	processor := audio.NewProcessor()
	defer processor.Cleanup()

	isLocal := strings.HasSuffix(source, ".wav")
	if output == "" {
		output = resolveOutput(processor, source, isLocal)
		fmt.Printf("      Output : %v\n", output)
	}

	fmt.Println("[1/4] Acquiring audio...")
	signal, err := acquire(processor, source, isLocal)
	if err != nil {
		return err
	}
	fmt.Printf("      Chroma : %v frames (%.1f s)\n",
		signal.Frames(), float64(signal.Frames())*signal.FrameDuration)

	fmt.Println("[2/4] Analysing chord sequence...")
	detector := chord.NewDetector()
	detector.MinChordDuration = minDuration
	events := detector.Analyze(signal)
	if len(events) == 0 {
		fmt.Fprintln(os.Stderr, "WARNING: no chords detected; try lowering --min-duration or checking the audio source")
		return nil
	}
	for _, event := range events {
		bar := strings.Repeat("=", util.Min(int(event.Duration*4), 40))
		fmt.Printf("  %7.2fs  %-4v %v\n", event.StartTime, event.Name(), bar)
	}

	fmt.Printf("[3/4] Applying grade %v voicing...\n", grade)
	voiced, err := voicing.VoiceAll(voicing.ForGrade(grade), events)
	if err != nil {
		return err
	}

	fmt.Printf("[4/4] Writing MIDI file -> %v...\n", output)
	if err := midi.NewExporter(tempo).Export(voiced, output); err != nil {
		return err
	}

	fmt.Printf("Done! Open %v in GarageBand, MuseScore, or any MIDI player.\n", output)
	return nil
}

// acquire produces the chroma signal, with a debounced live progress
// line while the WAV decodes.
func acquire(processor *audio.Processor, source string, isLocal bool) (model.Chroma, error) {
	writer := uilive.New()
	writer.Start()
	defer writer.Stop()

	debounced := debounce.New(100 * time.Millisecond)
	processor.Progress = func(done, total int) {
		debounced(func() {
			fmt.Fprintf(writer, "      decoded %v of %v samples\n", done, total)
		})
	}

	if isLocal {
		return processor.ExtractChroma(source)
	}
	return processor.Process(source)
}

// resolveOutput derives the MIDI filename from the video title (cached
// when a metadata cache is configured) or the WAV basename.
func resolveOutput(processor *audio.Processor, source string, isLocal bool) string {
	if isLocal {
		return util.TitleToFilename(strings.TrimSuffix(filepath.Base(source), ".wav"))
	}

	fmt.Println("[0/4] Resolving video title...")
	if db.Enabled() {
		if title, err := db.GetVideoTitle(source); err == nil {
			return util.TitleToFilename(title)
		}
	}

	title, err := processor.VideoTitle(source)
	if err != nil {
		return "output.mid"
	}
	if db.Enabled() {
		// best effort; a failed cache write is not worth surfacing
		_ = db.PutVideoTitle(source, title)
	}
	return util.TitleToFilename(title)
}
