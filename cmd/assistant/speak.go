package main

import (
	"fmt"
	"os"
	"strings"

	"party-advisor-be/internal/config"
	"party-advisor-be/pkg/speech"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSpeakCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "speak --out file.wav <text>",
		Short: "Read text aloud into a WAV file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			synth, err := speech.NewGeminiSynthesizer(cmd.Context(), cfg.Keys.GoogleGemini, cfg.Ai.TTSModel, cfg.Ai.TTSVoice)
			if err != nil {
				return err
			}

			audio, err := synth.Synthesize(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, speech.EncodeWAV(audio), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			peak, err := audio.Peak()
			if err != nil {
				return err
			}
			color.Green("Wrote %s (%.1fs, peak %.2f)", out, audio.Duration(), peak)
			if peak == 0 {
				color.Yellow("Warning: the synthesized audio is silent")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "speech.wav", "output WAV file")
	return cmd
}
