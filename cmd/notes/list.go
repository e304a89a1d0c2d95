package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMachine(cmd)
		if err != nil {
			return err
		}
		if err := m.RefreshNotes(cmd.Context()); err != nil {
			return err
		}
		return newRenderer(cmd).Summaries(m.Summaries())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
