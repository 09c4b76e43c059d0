package keyboard

import (
	"fmt"

	"github.com/futig/product-search/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback actions and values
const (
	ActionIndex  = "index"
	ActionExport = "dl"
	ActionScope  = "scope"

	IndexAll    = "all"
	IndexFolder = "folder"
	ScopeToggle = "toggle"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// IndexKeyboard offers a global rebuild and, once a folder is set, a rebuild
// of that folder alone.
func (b *Builder) IndexKeyboard(folder string, specific bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Update whole index", EncodeCallback(ActionIndex, IndexAll)),
		),
	}

	if folder != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📁 Update '%s' only", folder), EncodeCallback(ActionIndex, IndexFolder)),
		))

		label := "☐ /reindex: specific folder only"
		if specific {
			label = "☑ /reindex: specific folder only"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, EncodeCallback(ActionScope, ScopeToggle)),
		))
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ExportKeyboard creates download buttons for the last search
func (b *Builder) ExportKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 .md", EncodeCallback(ActionExport, string(entity.FormatMarkdown))),
			tgbotapi.NewInlineKeyboardButtonData("📕 .pdf", EncodeCallback(ActionExport, string(entity.FormatPDF))),
			tgbotapi.NewInlineKeyboardButtonData("📘 .docx", EncodeCallback(ActionExport, string(entity.FormatDOCX))),
		),
	)
}
