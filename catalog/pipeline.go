package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bookgrove/bookgrove/config"
)

// GenreAll is the sentinel that disables genre filtering.
const GenreAll = "all"

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortRecent SortKey = "recent"
	SortRating SortKey = "rating"
	SortYear   SortKey = "year"
	SortTitle  SortKey = "title"
)

// ParseSortKey falls back to SortRecent for unknown values.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortRecent, SortRating, SortYear, SortTitle:
		return SortKey(s)
	}
	return SortRecent
}

// ViewState is the search/genre/sort/page selection driving the visible
// page. It is a value threaded through the pipeline; the pipeline itself
// holds no state. Any filter or sort change resets the page to 1, only
// WithPage leaves the rest untouched.
type ViewState struct {
	Search string  `json:"search"`
	Genre  string  `json:"genre"`
	Sort   SortKey `json:"sort"`
	Page   int     `json:"page"`
}

func NewViewState() ViewState {
	return ViewState{
		Genre: GenreAll,
		Sort:  SortRecent,
		Page:  1,
	}
}

func (v ViewState) WithSearch(search string) ViewState {
	v.Search = search
	v.Page = 1
	return v
}

func (v ViewState) WithGenre(genre string) ViewState {
	if genre == "" {
		genre = GenreAll
	}
	v.Genre = genre
	v.Page = 1
	return v
}

func (v ViewState) WithSort(key SortKey) ViewState {
	v.Sort = key
	v.Page = 1
	return v
}

// WithPage keeps filtering and sorting as they are. Pages below 1 are the
// caller's bug; they are clamped here so a hand-built request cannot
// produce a negative offset.
func (v ViewState) WithPage(page int) ViewState {
	if page < 1 {
		page = 1
	}
	v.Page = page
	return v
}

// Page is one visible slice of the catalog plus pagination metadata.
type Page struct {
	Items       []*BookSummary `json:"items"`
	Total       int            `json:"total"`
	TotalPages  int            `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
}

// titleCollator orders titles the locale-aware way instead of by bytes.
var titleCollator = collate.New(language.Und, collate.Loose)

// GetPage derives the visible page from the aggregated collection and a
// ViewState. Pure: the input slice is not reordered. A page past the end
// yields an empty item list with the metadata intact.
func GetPage(list []*BookSummary, view ViewState) *Page {
	filtered := filterSummaries(list, view)
	sortSummaries(filtered, view.Sort)

	pageSize := config.Opts.PageSize
	totalPages := (len(filtered) + pageSize - 1) / pageSize

	page := view.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return &Page{
		Items:       filtered[start:end],
		Total:       len(filtered),
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}

// GenreOptions returns the distinct genres of the unfiltered collection
// in first-seen order, prefixed with the "all" sentinel.
func GenreOptions(list []*BookSummary) []string {
	options := []string{GenreAll}
	seen := map[string]bool{}
	for _, summary := range list {
		if summary.Genre == "" || seen[summary.Genre] {
			continue
		}
		seen[summary.Genre] = true
		options = append(options, summary.Genre)
	}
	return options
}

func filterSummaries(list []*BookSummary, view ViewState) []*BookSummary {
	search := strings.ToLower(strings.TrimSpace(view.Search))
	genre := view.Genre
	if genre == "" {
		genre = GenreAll
	}

	filtered := make([]*BookSummary, 0, len(list))
	for _, summary := range list {
		if search != "" &&
			!strings.Contains(strings.ToLower(summary.Title), search) &&
			!strings.Contains(strings.ToLower(summary.Author), search) {
			continue
		}
		if genre != GenreAll && summary.Genre != genre {
			continue
		}
		filtered = append(filtered, summary)
	}
	return filtered
}

// sortSummaries orders in place. Every key is tie-broken by ascending id
// so that equal values always land in the same order.
func sortSummaries(list []*BookSummary, key SortKey) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch key {
		case SortRating:
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
		case SortYear:
			if a.PublishedYear != b.PublishedYear {
				return a.PublishedYear > b.PublishedYear
			}
		case SortTitle:
			if cmp := titleCollator.CompareString(a.Title, b.Title); cmp != 0 {
				return cmp < 0
			}
		default: // SortRecent
			if a.CreatedTs != b.CreatedTs {
				return a.CreatedTs > b.CreatedTs
			}
		}
		return a.ID < b.ID
	})
}
