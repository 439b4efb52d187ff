package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ambersariya/tubechord/midi"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <midi-path>",
	Short: "Inspects a generated MIDI file",
	Long:  `Inspects a generated MIDI file, printing its tempo and the note events of every track.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	s, err := midi.ReadFile(path)
	if err != nil {
		return err
	}

	if tempos := s.TempoChanges(); len(tempos) > 0 {
		fmt.Printf("tempo: %.0f BPM\n", tempos[0].BPM)
	}

	for i, track := range s.Tracks {
		fmt.Printf("track %v:\n", i)
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				fmt.Printf("  tick %6d  on   ch=%v key=%v vel=%v\n", absTicks, channel, key, velocity)
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				fmt.Printf("  tick %6d  off  ch=%v key=%v\n", absTicks, channel, key)
			}
		}
	}
	return nil
}
