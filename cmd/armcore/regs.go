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
)

func newRegsCommand() *cobra.Command {
	f := &imageFlags{}

	cmd := &cobra.Command{
		Use:   "regs <image>",
		Short: "Run an image then dump its register file and CPSR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpRegs(cmd, f, args[0])
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func dumpRegs(cmd *cobra.Command, f *imageFlags, imagePath string) error {
	r, err := buildRig(cmd, f, imagePath, 16*1024*1024)
	if err != nil {
		return err
	}
	defer r.Close()

	if _, err := r.Core.Run(context.Background(), f.budget); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for n := 0; n < 16; n++ {
		v := r.Core.Regs.Get(n)
		if n == 15 {
			fmt.Fprintf(out, "r%-2d (pc) = %#010x\n", n, v)
			continue
		}
		fmt.Fprintf(out, "r%-2d      = %#010x\n", n, v)
	}

	s := r.Core.CPSR
	fmt.Fprintf(out, "cpsr mode=%#02x thumb=%v  n=%v z=%v c=%v v=%v q=%v  i=%v f=%v\n",
		s.Mode, s.T, s.N, s.Z, s.C, s.V, s.Q, s.I, s.F)
	fmt.Fprintf(out, "cycles   = %d\n", r.Core.Cycles)
	return nil
}
