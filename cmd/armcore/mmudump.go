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
	"fmt"

	"github.com/spf13/cobra"
)

func newMMUDumpCommand() *cobra.Command {
	f := &imageFlags{}

	cmd := &cobra.Command{
		Use:   "mmu-dump <image>",
		Short: "Print the configured first-level page table without executing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpMMU(cmd, f, args[0])
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func dumpMMU(cmd *cobra.Command, f *imageFlags, imagePath string) error {
	r, err := buildRig(cmd, f, imagePath, 16*1024*1024)
	if err != nil {
		return err
	}
	defer r.Close()

	out := cmd.OutOrStdout()
	slots := r.MMU.WalkL1()
	if len(slots) == 0 {
		fmt.Fprintln(out, "no populated first-level descriptors (MMU not yet configured by the image, or still disabled)")
		return nil
	}
	for _, s := range slots {
		switch s.Kind {
		case "section":
			fmt.Fprintf(out, "%#010x  section  -> %#010x  domain=%d\n", s.VAddr, s.Target, s.Domain)
		default:
			fmt.Fprintf(out, "%#010x  %-7s -> %#010x (2nd level)  domain=%d\n", s.VAddr, s.Kind, s.Target, s.Domain)
		}
	}
	return nil
}
