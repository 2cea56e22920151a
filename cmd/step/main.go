// Command step loads a raw 6502 binary image into memory and launches an
// interactive, terminal-based single-stepper over it.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"go6502/bus"
	"go6502/cpu"
	"go6502/debugger"
)

func main() {
	var origin string
	var resetAddr string

	rootCmd := &cobra.Command{
		Use:   "step [program.bin]",
		Short: "Single-step a 6502 binary image in an interactive debugger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := parseAddr(origin)
			if err != nil {
				return fmt.Errorf("--origin: %w", err)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if len(data) > 0x10000 {
				return fmt.Errorf("%s is %d bytes, too large for a 64K address space", args[0], len(data))
			}

			mem := bus.NewRAM()
			mem.LoadAt(base, data)

			start := base
			if resetAddr != "" {
				start, err = parseAddr(resetAddr)
				if err != nil {
					return fmt.Errorf("--reset: %w", err)
				}
			}
			// source order: high byte at $FFFC, low byte at $FFFD.
			mem.WriteByte(0xFFFC, byte(start>>8))
			mem.WriteByte(0xFFFD, byte(start))

			c := cpu.New(mem)
			return debugger.Run(c)
		},
	}
	rootCmd.Flags().StringVar(&origin, "origin", "0x0000", "load address for the image (hex or decimal)")
	rootCmd.Flags().StringVar(&resetAddr, "reset", "", "initial PC (defaults to --origin)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseAddr(s string) (uint16, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	base := 10
	if strings.HasPrefix(s, "0x") {
		s = strings.TrimPrefix(s, "0x")
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
