package search

import (
	"strings"

	"github.com/futig/product-search/internal/entity"
)

// Action is what a surface should do with the current query input.
type Action int

const (
	ActionIdle Action = iota
	ActionWarnEmpty
	ActionSearch
)

const MsgEmptyQuery = "Please enter a search query"

// Decide is evaluated whenever the query value changes or the search trigger
// is activated. Any non-empty query searches, so confirming or re-entering a
// query re-runs it; an empty query only warns when the trigger was used.
func Decide(query string, submitted bool) Action {
	switch {
	case strings.TrimSpace(query) != "":
		return ActionSearch
	case submitted:
		return ActionWarnEmpty
	default:
		return ActionIdle
	}
}

// EmptyQueryNotice is shown when the search trigger is used without a query.
func EmptyQueryNotice() entity.Notice {
	return entity.Notice{Level: entity.NoticeWarning, Text: MsgEmptyQuery}
}
