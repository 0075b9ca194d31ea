// cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kc3fua/keydecoder/internal/audio"
	"github.com/kc3fua/keydecoder/internal/button"
	"github.com/kc3fua/keydecoder/internal/config"
	"github.com/kc3fua/keydecoder/internal/keyer"
	"github.com/kc3fua/keydecoder/internal/morse"
	"github.com/kc3fua/keydecoder/internal/replay"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "keydecoder",
	Short: "Morse decoder for a single straight key",
	Long: `Decodes Morse code keyed on a single button. The key is polled at 100Hz;
press durations classify as dots and dashes, release durations as letter
and word boundaries, and decoded text is printed as it arrives.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().StringP("input", "i", "replay", "input source (replay or audio)")
	rootCmd.PersistentFlags().StringP("script", "s", "", "keying script to replay")
	rootCmd.PersistentFlags().IntP("device", "d", -1, "audio device index (-1 for default)")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug output")
	rootCmd.PersistentFlags().Int("dash-ticks", keyer.DefaultDashTicks, "hold ticks above which a press is a dash")
	rootCmd.PersistentFlags().Int("letter-gap-ticks", keyer.DefaultLetterGapTicks, "release ticks ending the letter")
	rootCmd.PersistentFlags().Int("word-gap-ticks", keyer.DefaultWordGapTicks, "release ticks ending the word")

	// Bind flags to viper
	viper.BindPFlag("input", rootCmd.PersistentFlags().Lookup("input"))
	viper.BindPFlag("script", rootCmd.PersistentFlags().Lookup("script"))
	viper.BindPFlag("device_index", rootCmd.PersistentFlags().Lookup("device"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("dash_ticks", rootCmd.PersistentFlags().Lookup("dash-ticks"))
	viper.BindPFlag("letter_gap_ticks", rootCmd.PersistentFlags().Lookup("letter-gap-ticks"))
	viper.BindPFlag("word_gap_ticks", rootCmd.PersistentFlags().Lookup("word-gap-ticks"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}

func run(out, errw io.Writer) error {
	cfg, err := config.Get()
	if err != nil {
		return err
	}

	classifier, err := keyer.NewClassifier(keyer.Config{
		DashTicks:      cfg.DashTicks,
		LetterGapTicks: cfg.LetterGapTicks,
		WordGapTicks:   cfg.WordGapTicks,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, cleanup, err := buildSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	session := keyer.NewSession(source, classifier, morse.NewDecoder(morse.NewDefaultTree()))
	session.SetCallback(func(o keyer.Output) {
		if o.Err != nil {
			if cfg.Debug {
				fmt.Fprintf(errw, "decode: %v\n", o.Err)
			}
			return
		}
		fmt.Fprint(out, string(o.Char))
	})

	err = session.Run(ctx)
	fmt.Fprintln(out)
	if errors.Is(err, context.Canceled) {
		// Interrupted at the keyboard; not a failure.
		return nil
	}
	return err
}

// buildSource picks the button source for the configured input.
func buildSource(ctx context.Context, cfg *config.Settings) (button.Source, func(), error) {
	switch cfg.Input {
	case "replay":
		if cfg.Script == "" {
			return nil, nil, fmt.Errorf("replay input requires a script (--script)")
		}
		script, err := replay.Load(cfg.Script)
		if err != nil {
			return nil, nil, err
		}
		return script.Source(), func() {}, nil

	case "audio":
		envelope, err := audio.NewEnvelope(cfg.BufferSize)
		if err != nil {
			return nil, nil, err
		}
		key, err := audio.NewKey(audio.KeyConfig{
			Threshold:  cfg.Threshold,
			Hysteresis: cfg.Hysteresis,
		}, envelope)
		if err != nil {
			return nil, nil, err
		}

		capture := audio.New(audio.Config{
			DeviceIndex: cfg.DeviceIndex,
			SampleRate:  uint32(cfg.SampleRate),
			BufferSize:  uint32(cfg.BufferSize),
		})
		capture.SetCallback(key.Process)
		if err := capture.Init(); err != nil {
			return nil, nil, err
		}
		if err := capture.Start(ctx); err != nil {
			_ = capture.Close()
			return nil, nil, err
		}
		return key, func() { _ = capture.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown input %q", cfg.Input)
	}
}
