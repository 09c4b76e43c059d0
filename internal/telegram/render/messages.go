package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/product-search/internal/entity"
	"github.com/futig/product-search/internal/usecase/index"
)

// maxMessageLength keeps replies under Telegram's 4096 character limit
const maxMessageLength = 3900

const (
	// Welcome messages
	MsgWelcome = `👋 Hi! I keep product files in their folders and search them for you.

` + MsgHelp

	MsgHelp = `🤖 Commands:

/folder <name> - Set the product folder for uploads
/specific - Toggle whether /reindex covers only that folder
/reindex - Update the content index
/search <query> - Search products (or just send the query as text)
/reset - Forget the folder and last search
/help - Show this help

Send files as documents to upload them into the current folder.`

	// Folder
	MsgFolderSet     = "📁 Product folder set to '%s'. Send documents to upload them there."
	MsgFolderMissing = "📁 Set a product folder first: /folder <name>"
	MsgFolderUsage   = "Usage: /folder <name>, for example /folder modern_chairs"
	MsgScopeFolder   = "🎯 /reindex will update only '%s'."
	MsgScopeAll      = "🌐 /reindex will update the whole index."
	MsgReset         = "🧹 Folder and last search cleared."

	// Progress
	MsgUploading      = "⏳ Uploading %s to '%s'..."
	MsgUpdatingIndex  = "⏳ Updating content index..."
	MsgSearching      = "🔍 Searching..."
	MsgExporting      = "📦 Preparing %s export..."
	MsgSendAsDocument = "📎 Send files as documents, or text to search."

	// Errors
	ErrGeneric       = "❌ Something went wrong. Please try again."
	ErrUnknownAction = "❌ Unknown command. Use /help"
	ErrFileTooBig    = "❌ %s is %d bytes; Telegram bots can download at most %d bytes."
	ErrNoLastQuery   = "🔍 Run a search first, then export it."
)

var noticeIcons = map[entity.NoticeLevel]string{
	entity.NoticeSuccess: "✅",
	entity.NoticeInfo:    "ℹ️",
	entity.NoticeWarning: "⚠️",
	entity.NoticeError:   "❌",
}

// RenderNotices joins notices into one message, one line each
func RenderNotices(notices ...entity.Notice) string {
	lines := make([]string, 0, len(notices))
	for _, n := range notices {
		lines = append(lines, noticeIcons[n.Level]+" "+n.Text)
	}
	return truncate(strings.Join(lines, "\n"))
}

// RenderSearchView lists results in backend order, numbered as they appear
// in the grid (left to right, top to bottom).
func RenderSearchView(view *entity.SearchView, notice entity.Notice) string {
	var b strings.Builder
	b.WriteString(RenderNotices(notice))

	for i, card := range view.Cards {
		fmt.Fprintf(&b, "\n\n%d. %s\nScore: %s\nFile: %s", i+1, card.Title, card.Subtitle, card.Detail)
	}

	return truncate(b.String())
}

// RenderIndexReply appends the backend's index reply, pretty-printed
func RenderIndexReply(notice entity.Notice, reply json.RawMessage) string {
	return truncate(RenderNotices(notice) + "\n\n" + index.FormatReply(reply))
}

// RenderScope describes what /reindex will cover
func RenderScope(folder string, specific bool) string {
	if specific && folder != "" {
		return fmt.Sprintf(MsgScopeFolder, folder)
	}
	return MsgScopeAll
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMessageLength {
		return s
	}
	return string(r[:maxMessageLength]) + "\n…"
}
