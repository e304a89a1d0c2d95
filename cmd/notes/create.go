package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"rich-notes-be/pkg/richtext"

	"github.com/spf13/cobra"
)

var (
	createTitle string
	createText  string
	createFile  string
	createType  string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Long: `Create a note from --text, --file or stdin ("--file -").
Each line becomes a block of --type. Files holding draft-js or Lexical JSON
are imported as is.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		blockType, err := parseBlockType(createType)
		if err != nil {
			return err
		}

		text := createText
		if createFile != "" {
			text, err = readInput(cmd.InOrStdin(), createFile)
			if err != nil {
				return err
			}
		}

		m, err := newMachine(cmd)
		if err != nil {
			return err
		}
		if err := m.NewNote(); err != nil {
			return err
		}
		if createTitle != "" {
			if err := m.EditTitle(createTitle); err != nil {
				return err
			}
		}
		if err := m.EditContent(documentFromInput(text, blockType)); err != nil {
			return err
		}

		note, err := m.Save(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), note.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Note title (default \"New Note\")")
	createCmd.Flags().StringVar(&createText, "text", "", "Note text, one block per line")
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "Read content from a file, - for stdin")
	createCmd.Flags().StringVar(&createType, "type", string(richtext.BlockUnstyled), "Block type for text lines")
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// documentFromInput imports serialized documents and splits anything else
// into one block per line.
func documentFromInput(text string, blockType richtext.BlockType) richtext.Document {
	if doc, err := richtext.NewCodec(logger).DeserializeStrict(text); err == nil {
		return doc
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	doc := richtext.EmptyDocument()
	doc.Blocks[0].Type = blockType
	doc.Blocks[0].Text = lines[0]
	for _, line := range lines[1:] {
		doc = richtext.AppendBlock(doc, blockType, line)
	}
	return doc
}

func parseBlockType(s string) (richtext.BlockType, error) {
	t := richtext.BlockType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown block type %q", s)
	}
	return t, nil
}
