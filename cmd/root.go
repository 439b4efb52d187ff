package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tubechord",
	Short: "Extract piano chords from a YouTube video as MIDI",
	Long:  `TubeChord turns the harmonic content of a YouTube video into a playable two hand piano score, saved as a two track MIDI file.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
