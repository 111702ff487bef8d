package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wfriedl/PE200/comm/serial"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Probe all serial ports for a pump",
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := serial.ListPorts()
		if err != nil {
			panic(err)
		}
		for _, name := range ports {
			fmt.Printf("testing %s... ", name)
			p, err := serial.Probe(name)
			if err != nil {
				fmt.Println("no")
				continue
			}
			fmt.Println("found pump")
			_ = p.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
