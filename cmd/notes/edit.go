package main

import (
	"fmt"

	"rich-notes-be/pkg/richtext"
	"rich-notes-be/pkg/session"

	"github.com/spf13/cobra"
)

var (
	editTitle      string
	editAppend     []string
	editAppendType string
	editStyles     []string
	editBlockType  string
	editKeyCommand string
	editBlock      int
	editToBlock    int
	editFrom       int
	editTo         int
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change a note's title, text or formatting",
	Long: `Edit loads a note, applies the requested changes in order
(title, appended lines, block type, inline styles, key command) and saves it
when anything changed.

The selection runs from --from in block --block to --to in block --to-block.
Blocks are numbered from 0; --to -1 means the end of the block.`,
	Example: `  notes edit 3f2a... --style bold --block 0 --from 0 --to 5
  notes edit 3f2a... --block-type unordered-list-item --block 1 --to-block 3
  notes edit 3f2a... --append "Milk" --append-type ordered-list-item`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMachine(cmd)
		if err != nil {
			return err
		}
		if err := m.SelectNote(cmd.Context(), args[0]); err != nil {
			return err
		}

		if err := applyEdits(m); err != nil {
			return err
		}

		if !m.Snapshot().IsDirty {
			fmt.Fprintln(cmd.ErrOrStderr(), "Nothing changed")
			return nil
		}
		if _, err := m.Save(cmd.Context()); err != nil {
			return err
		}
		return newRenderer(cmd).Session(m.Snapshot())
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	flags := editCmd.Flags()
	flags.StringVarP(&editTitle, "title", "t", "", "New title")
	flags.StringArrayVar(&editAppend, "append", nil, "Append a block (repeatable)")
	flags.StringVar(&editAppendType, "append-type", string(richtext.BlockUnstyled), "Block type of appended blocks")
	flags.StringSliceVarP(&editStyles, "style", "s", nil, "Toggle inline styles: bold, italic, underline, red, blue, green, purple, orange")
	flags.StringVar(&editBlockType, "block-type", "", "Toggle the block type of the selected blocks")
	flags.StringVar(&editKeyCommand, "key-command", "", "Apply an editor key command (bold, italic, underline)")
	flags.IntVar(&editBlock, "block", 0, "First selected block")
	flags.IntVar(&editToBlock, "to-block", -1, "Last selected block (default --block)")
	flags.IntVar(&editFrom, "from", 0, "Selection start within the first block")
	flags.IntVar(&editTo, "to", -1, "Selection end within the last block")
}

func applyEdits(m *session.Machine) error {
	if editTitle != "" {
		if err := m.EditTitle(editTitle); err != nil {
			return err
		}
	}

	if len(editAppend) > 0 {
		blockType, err := parseBlockType(editAppendType)
		if err != nil {
			return err
		}
		doc := m.Snapshot().DraftDocument
		for _, line := range editAppend {
			doc = richtext.AppendBlock(doc, blockType, line)
		}
		if err := m.EditContent(doc); err != nil {
			return err
		}
	}

	if editBlockType == "" && len(editStyles) == 0 && editKeyCommand == "" {
		return nil
	}
	sel, err := selectBlocks(m.Snapshot().DraftDocument, editBlock, editToBlock, editFrom, editTo)
	if err != nil {
		return err
	}

	if editBlockType != "" {
		blockType, err := parseBlockType(editBlockType)
		if err != nil {
			return err
		}
		if err := m.ApplyBlockType(sel, blockType); err != nil {
			return err
		}
	}

	for _, name := range editStyles {
		style, ok := richtext.ParseInlineStyle(name)
		if !ok {
			return fmt.Errorf("unknown style %q", name)
		}
		if err := m.ApplyInlineStyle(sel, style); err != nil {
			return err
		}
	}

	if editKeyCommand != "" {
		res, err := m.ApplyKeyCommand(sel, editKeyCommand)
		if err != nil {
			return err
		}
		if res == richtext.NotHandled {
			return fmt.Errorf("key command %q is not supported", editKeyCommand)
		}
	}
	return nil
}

// selectBlocks turns block indexes and offsets into a selection.
func selectBlocks(doc richtext.Document, from, to, start, end int) (richtext.Selection, error) {
	if to < 0 {
		to = from
	}
	if from < 0 || from >= len(doc.Blocks) || to < from || to >= len(doc.Blocks) {
		return richtext.Selection{}, fmt.Errorf("block range %d..%d outside 0..%d", from, to, len(doc.Blocks)-1)
	}
	if end < 0 {
		end = doc.Blocks[to].Len()
	}

	sel := richtext.Selection{
		BlockKey:    doc.Blocks[from].Key,
		StartOffset: start,
		EndBlockKey: doc.Blocks[to].Key,
		EndOffset:   end,
	}
	if err := richtext.ValidateSelection(doc, sel); err != nil {
		return richtext.Selection{}, err
	}
	return sel, nil
}
