package main

import (
	"context"
	"errors"
	"fmt"

	"rich-notes-be/pkg/session"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []session.Option
		if !deleteYes {
			opts = append(opts, session.WithConfirmer(huhConfirmer{}))
		}

		m, err := newMachine(cmd, opts...)
		if err != nil {
			return err
		}
		if err := m.SelectNote(cmd.Context(), args[0]); err != nil {
			return err
		}

		err = m.Delete(cmd.Context())
		if errors.Is(err, session.ErrDeleteDeclined) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Kept", args[0])
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")
}

// huhConfirmer asks on the terminal.
type huhConfirmer struct{}

func (huhConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed),
	))
	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return confirmed, err
}
