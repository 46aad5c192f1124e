package catalog

import (
	"testing"

	"github.com/bookgrove/bookgrove/model"
)

// seven books across three genres; page size is 5, so two pages.
func testSummaries() []*BookSummary {
	books := []*model.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", PublishedYear: 1965, CreatedTs: 100},
		{ID: 2, Title: "Gaudy Night", Author: "Dorothy L. Sayers", Genre: "Mystery", PublishedYear: 1935, CreatedTs: 200},
		{ID: 3, Title: "Neuromancer", Author: "William Gibson", Genre: "Science Fiction", PublishedYear: 1984, CreatedTs: 300},
		{ID: 4, Title: "Piranesi", Author: "Susanna Clarke", Genre: "Fantasy", PublishedYear: 2020, CreatedTs: 400},
		{ID: 5, Title: "The Dispossessed", Author: "Ursula K. Le Guin", Genre: "Science Fiction", PublishedYear: 1974, CreatedTs: 500},
		{ID: 6, Title: "Middlemarch", Author: "George Eliot", Genre: "Classic", PublishedYear: 1871, CreatedTs: 600},
		{ID: 7, Title: "The Name of the Rose", Author: "Umberto Eco", Genre: "Mystery", PublishedYear: 1980, CreatedTs: 700},
	}
	reviews := []*model.Review{
		{ID: 1, BookID: 1, AuthorID: 1, Rating: 5},
		{ID: 2, BookID: 1, AuthorID: 2, Rating: 4},
		{ID: 3, BookID: 3, AuthorID: 1, Rating: 3},
		{ID: 4, BookID: 4, AuthorID: 2, Rating: 5},
	}
	return Aggregate(books, reviews)
}

func TestGetPagePagination(t *testing.T) {
	list := testSummaries()

	page := GetPage(list, NewViewState())
	if page.Total != 7 {
		t.Fatalf("Expected total 7, got %d", page.Total)
	}
	if page.TotalPages != 2 {
		t.Fatalf("Expected 2 pages, got %d", page.TotalPages)
	}
	if len(page.Items) != 5 {
		t.Fatalf("Expected 5 items on page 1, got %d", len(page.Items))
	}

	page2 := GetPage(list, NewViewState().WithPage(2))
	if len(page2.Items) != 2 {
		t.Fatalf("Expected 2 items on page 2, got %d", len(page2.Items))
	}
	if page2.CurrentPage != 2 {
		t.Fatalf("Expected current page 2, got %d", page2.CurrentPage)
	}
}

func TestGetPageOutOfRange(t *testing.T) {
	list := testSummaries()

	page := GetPage(list, NewViewState().WithPage(9))
	if len(page.Items) != 0 {
		t.Fatalf("Expected empty page past the end, got %d items", len(page.Items))
	}
	if page.Total != 7 || page.TotalPages != 2 {
		t.Fatalf("Expected metadata intact, got %+v", page)
	}
}

func TestGetPageSearchMatchesTitleOrAuthor(t *testing.T) {
	list := testSummaries()

	page := GetPage(list, NewViewState().WithSearch("le guin"))
	if page.Total != 1 || page.Items[0].ID != 5 {
		t.Fatalf("Expected author match only, got %+v", page)
	}

	// Case-insensitive: matches "The Dispossessed" and "The Name of
	// the Rose" only.
	page = GetPage(list, NewViewState().WithSearch("THE"))
	if page.Total != 2 {
		t.Fatalf("Expected 2 case-insensitive matches, got %d", page.Total)
	}
}

func TestGetPageGenreFilter(t *testing.T) {
	list := testSummaries()

	page := GetPage(list, NewViewState().WithGenre("Science Fiction"))
	if page.Total != 3 {
		t.Fatalf("Expected 3 science fiction books, got %d", page.Total)
	}
	for _, item := range page.Items {
		if item.Genre != "Science Fiction" {
			t.Fatalf("Genre filter leaked %q", item.Genre)
		}
	}

	page = GetPage(list, NewViewState().WithGenre(GenreAll))
	if page.Total != 7 {
		t.Fatalf("Expected all books for the all sentinel, got %d", page.Total)
	}
}

func TestGetPageSortOrders(t *testing.T) {
	list := testSummaries()

	page := GetPage(list, NewViewState().WithSort(SortRecent))
	items := collectAll(t, list, NewViewState().WithSort(SortRecent))
	for i := 1; i < len(items); i++ {
		if items[i-1].CreatedTs < items[i].CreatedTs {
			t.Fatalf("Recent sort out of order at %d", i)
		}
	}
	if page.Items[0].ID != 7 {
		t.Fatalf("Expected newest book first, got %d", page.Items[0].ID)
	}

	items = collectAll(t, list, NewViewState().WithSort(SortRating))
	for i := 1; i < len(items); i++ {
		if items[i-1].AverageRating < items[i].AverageRating {
			t.Fatalf("Rating sort out of order at %d", i)
		}
	}

	items = collectAll(t, list, NewViewState().WithSort(SortYear))
	for i := 1; i < len(items); i++ {
		if items[i-1].PublishedYear < items[i].PublishedYear {
			t.Fatalf("Year sort out of order at %d", i)
		}
	}

	items = collectAll(t, list, NewViewState().WithSort(SortTitle))
	if items[0].ID != 1 { // "Dune"
		t.Fatalf("Expected Dune first in title order, got %q", items[0].Title)
	}
}

func TestSortTieBreaksByID(t *testing.T) {
	books := []*model.Book{
		{ID: 3, Title: "B", PublishedYear: 1990, CreatedTs: 100},
		{ID: 1, Title: "C", PublishedYear: 1990, CreatedTs: 100},
		{ID: 2, Title: "A", PublishedYear: 1990, CreatedTs: 100},
	}
	list := Aggregate(books, nil)

	items := collectAll(t, list, NewViewState().WithSort(SortYear))
	for i, want := range []int{1, 2, 3} {
		if items[i].ID != want {
			t.Fatalf("Expected id %d at position %d, got %d", want, i, items[i].ID)
		}
	}
}

func TestViewStateResetsPage(t *testing.T) {
	view := NewViewState().WithPage(3)

	if got := view.WithSearch("dune").Page; got != 1 {
		t.Fatalf("Search change should reset page, got %d", got)
	}
	if got := view.WithGenre("Mystery").Page; got != 1 {
		t.Fatalf("Genre change should reset page, got %d", got)
	}
	if got := view.WithSort(SortTitle).Page; got != 1 {
		t.Fatalf("Sort change should reset page, got %d", got)
	}
	if got := view.WithPage(2).Page; got != 2 {
		t.Fatalf("Page change should keep the page, got %d", got)
	}
	if got := view.WithPage(-4).Page; got != 1 {
		t.Fatalf("Pages below 1 should clamp, got %d", got)
	}
}

func TestGenreOptionsFirstSeenOrder(t *testing.T) {
	list := testSummaries()

	options := GenreOptions(list)
	want := []string{GenreAll, "Science Fiction", "Mystery", "Fantasy", "Classic"}
	if len(options) != len(want) {
		t.Fatalf("Expected %d options, got %v", len(want), options)
	}
	for i := range want {
		if options[i] != want[i] {
			t.Fatalf("Expected %q at %d, got %q", want[i], i, options[i])
		}
	}
}

func TestGetPageDoesNotReorderInput(t *testing.T) {
	list := testSummaries()

	GetPage(list, NewViewState().WithSort(SortTitle))
	for i := range list {
		if list[i].ID != i+1 {
			t.Fatalf("Input slice was reordered at %d", i)
		}
	}
}

// collectAll pages through the whole filtered collection in order.
func collectAll(t *testing.T, list []*BookSummary, view ViewState) []*BookSummary {
	t.Helper()

	var items []*BookSummary
	page := GetPage(list, view)
	for p := 1; p <= page.TotalPages; p++ {
		items = append(items, GetPage(list, view.WithPage(p)).Items...)
	}
	return items
}
