package main

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Render a note in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMachine(cmd)
		if err != nil {
			return err
		}
		if err := m.SelectNote(cmd.Context(), args[0]); err != nil {
			return err
		}
		return newRenderer(cmd).Session(m.Snapshot())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
