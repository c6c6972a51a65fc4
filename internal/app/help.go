package app

import (
	"github.com/zjrosen/linedit/internal/log"
	"github.com/zjrosen/linedit/internal/ui/markdown"
)

const helpMarkdown = `# linedit

Type a command at the prompt and press **enter**. Line numbers start at 1.

| Command | Effect |
|---|---|
| ` + "`i <pos> <text>`" + ` | insert text as a new line at pos (clamped to the ends) |
| ` + "`d <pos>`" + ` | delete the line at pos |
| ` + "`e <line> <text>`" + ` | replace a line's content |
| ` + "`y <start> <end>`" + ` | copy lines into the register |
| ` + "`x <start> <end>`" + ` | cut lines into the register |
| ` + "`p <pos>`" + ` | paste the register at pos |
| ` + "`s/find/replace/`" + ` | replace every occurrence on every line |
| ` + "`u [n]`" + ` | undo the last n changes |
| ` + "`r [n]`" + ` | redo the last n undone changes |
| ` + "`w [path]`" + ` | write the buffer to the file, or to path |
| ` + "`diff`" + ` | compare the buffer with the file on disk |
| ` + "`q`" + ` | quit; asks again when there are unsaved changes |
| ` + "`q!`" + ` | quit and discard changes |

Long forms work too: insert, delete, edit, copy, cut, paste, undo, redo, write, quit.

Every change can be undone, including cut, paste, edit and replace, which each undo in one step.
A new change clears the redo list.
`

// renderHelp renders the help page for the current width, reusing the
// renderer while the width and style stay the same.
func (m *Model) renderHelp() string {
	if !m.helpRenderer.Fits(m.width, m.cfg.UI.MarkdownStyle) {
		r, err := markdown.New(m.width, m.cfg.UI.MarkdownStyle)
		if err != nil {
			log.ErrorErr(log.CatUI, "help renderer", err)
			return helpMarkdown
		}
		m.helpRenderer = r
	}
	return m.helpRenderer.Page(helpMarkdown)
}
