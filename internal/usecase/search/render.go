package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/futig/product-search/internal/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MsgNoMatches = "No matching products found. Try a different search query."
	msgFoundFmt  = "Found %d matching products:"
)

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")

// FormatTitle turns a folder key like "modern_chairs" into "Modern Chairs".
func FormatTitle(folder string) string {
	return cases.Title(language.Und).String(separatorReplacer.Replace(folder))
}

// FormatScore shows a score rounded to two decimals.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

// BuildView lays results out for display without reordering them: result i
// goes to column i mod 3, row i / 3.
func BuildView(query string, results []entity.SearchResult) *entity.SearchView {
	view := &entity.SearchView{
		Query:   query,
		Results: results,
		Cards:   make([]entity.ResultCard, 0, len(results)),
	}

	if len(results) == 0 {
		view.State = entity.SearchStateNoMatches
		view.Message = MsgNoMatches
		return view
	}

	view.State = entity.SearchStateResults
	view.Message = fmt.Sprintf(msgFoundFmt, len(results))

	for i, r := range results {
		card := entity.ResultCard{
			Title:    FormatTitle(r.ProductFolder),
			Subtitle: FormatScore(r.Score),
			Detail:   r.FileName,
			Column:   i % entity.GridColumns,
			Row:      i / entity.GridColumns,
		}
		view.Cards = append(view.Cards, card)
		view.Columns[card.Column] = append(view.Columns[card.Column], card)
	}

	return view
}

// Notice is the headline shown above a successful search.
func Notice(view *entity.SearchView) entity.Notice {
	level := entity.NoticeSuccess
	if view.State == entity.SearchStateNoMatches {
		level = entity.NoticeInfo
	}
	return entity.Notice{Level: level, Text: view.Message}
}
