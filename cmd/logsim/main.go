// Command logsim is a batch driver for the simulator: it compiles a
// definition file, runs it for a number of cycles and prints every
// monitored trace. Interactive use belongs to a separate front-end.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	logsim "github.com/EntropyF/jf731-GF2-Team3-2024"
)

var cycles int

var rootCmd = &cobra.Command{
	Use:           "logsim",
	Short:         "Compile and simulate logic circuit definition files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a definition file and print its monitor traces",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		names := logsim.NewNames()
		net, diags := logsim.ParseNetwork(string(src), names)
		if net == nil {
			for _, d := range diags {
				fmt.Fprintln(os.Stderr, logsim.FormatDiagnostic(string(src), d))
				fmt.Fprintln(os.Stderr)
			}
			return fmt.Errorf("%s: %d error(s)", args[0], len(diags))
		}
		if _, err := net.Run(cycles); err != nil {
			return err
		}
		for _, h := range net.Monitors() {
			fmt.Printf("%-16s %s\n", net.MonitorName(h), net.TraceString(h))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVarP(&cycles, "cycles", "c", 20, "number of cycles to simulate")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
