// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silicontrip/armcore/cpu"
)

// haltSWI is the demo sink's "stop the run loop" convention: an image that
// wants to exit cleanly issues SWI #haltSWI rather than spinning or
// faulting its way to a budget exhaustion.
const haltSWI = 0xff

func newRunCommand() *cobra.Command {
	f := &imageFlags{}

	cmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load a flat binary image and execute it to a budget or halt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(cmd, f, args[0])
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func runImage(cmd *cobra.Command, f *imageFlags, imagePath string) error {
	r, err := buildRig(cmd, f, imagePath, 16*1024*1024)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	halted := false
	r.Core.Sink = haltSink(func() {
		halted = true
		cancel()
	})

	result, err := r.Core.Run(ctx, f.budget)
	if err != nil {
		return err
	}

	switch {
	case halted:
		fmt.Fprintf(cmd.OutOrStdout(), "halted via SWI #%#x after %d cycles\n", haltSWI, r.Core.Cycles)
	case result == cpu.ResultBudgetExhausted:
		fmt.Fprintf(cmd.OutOrStdout(), "budget of %d instructions exhausted (%d cycles)\n", f.budget, r.Core.Cycles)
	case result == cpu.ResultReset:
		fmt.Fprintln(cmd.OutOrStdout(), "core reset mid-run (Reset line asserted)")
	}
	return nil
}

// haltSink is a syscall.Sink that treats any SWI whose immediate has haltSWI
// in its low byte as "the image is done", declining every other SWI so it falls
// through to the architectural Supervisor vector as normal.
type haltSink func()

func (h haltSink) HandleSWI(imm uint32) bool {
	if imm&0xff == haltSWI {
		h()
		return true
	}
	return false
}
