package entity

// SearchResult is one ranked hit. Score is the backend's relevance signal and
// is displayed as received.
type SearchResult struct {
	ProductFolder string  `json:"product_folder"`
	FileName      string  `json:"file_name"`
	Score         float64 `json:"score"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type SearchState string

const (
	SearchStateResults   SearchState = "results"
	SearchStateNoMatches SearchState = "no_matches"
)

// GridColumns is the width of the result grid.
const GridColumns = 3

// ResultCard is the display form of one result and its grid slot.
type ResultCard struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Detail   string `json:"detail"`
	Column   int    `json:"column"`
	Row      int    `json:"row"`
}

// SearchView is a successful search ready to render. Results and Cards keep
// backend order; Columns holds the same cards split into grid columns.
type SearchView struct {
	Query   string                    `json:"query"`
	State   SearchState               `json:"state"`
	Message string                    `json:"message"`
	Results []SearchResult            `json:"results"`
	Cards   []ResultCard              `json:"cards"`
	Columns [GridColumns][]ResultCard `json:"-"`
}
