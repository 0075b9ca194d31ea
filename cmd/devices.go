// cmd/devices.go
package cmd

import (
	"fmt"

	"github.com/kc3fua/keydecoder/internal/audio"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio capture devices",
	Long:  `Lists the capture devices usable with the audio key interface, with their indexes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		capture := audio.New(audio.DefaultConfig())
		if err := capture.Init(); err != nil {
			return err
		}
		defer capture.Close()

		devices, err := capture.ListDevices()
		if err != nil {
			return err
		}

		if len(devices) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no capture devices found")
			return nil
		}
		for i, d := range devices {
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", i, d.Name())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
