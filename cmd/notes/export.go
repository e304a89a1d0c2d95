package main

import (
	"fmt"
	"os"

	"rich-notes-be/pkg/richtext"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportLocal  bool
)

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a note as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var md string
		if exportLocal {
			note, err := client.GetNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc := richtext.NewCodec(logger).Deserialize(note.Content)
			md = fmt.Sprintf("# %s\n\n%s", note.Title, richtext.ToMarkdown(doc))
		} else {
			md, err = client.Markdown(cmd.Context(), args[0])
			if err != nil {
				return err
			}
		}

		if exportOutput == "" || exportOutput == "-" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		}
		if err := os.WriteFile(exportOutput, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOutput, err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Exported to", exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportLocal, "local", false, "Render Markdown locally instead of asking the server")
}
