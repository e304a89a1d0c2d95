package richtext

// KeyCommandResult tells the caller whether a key command was consumed.
type KeyCommandResult string

const (
	Handled    KeyCommandResult = "handled"
	NotHandled KeyCommandResult = "not-handled"
)

// keyCommands maps editor shortcut commands to the inline style they toggle.
var keyCommands = map[string]InlineStyle{
	"bold":      StyleBold,
	"italic":    StyleItalic,
	"underline": StyleUnderline,
}

// HandleKeyCommand applies a shortcut command. Commands outside the table are
// NotHandled and left to default text editing.
func HandleKeyCommand(doc Document, sel Selection, command string) (Document, KeyCommandResult) {
	style, ok := keyCommands[command]
	if !ok {
		return doc, NotHandled
	}
	return ToggleInlineStyle(doc, sel, style), Handled
}
