package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/domain"
	applog "github.com/mmcdole/reel/internal/log"
	"github.com/mmcdole/reel/internal/service"
)

// pagedSource serves three discover pages and echoes search queries
type pagedSource struct {
	mu       sync.Mutex
	calls    []domain.PageRequest
	failWith error
}

func (s *pagedSource) Discover(_ context.Context, page int) (*domain.ResultPage, error) {
	s.record(domain.PageRequest{Mode: domain.ModeDiscover, Page: page})
	if s.failWith != nil {
		return nil, s.failWith
	}
	if page == 1 {
		return &domain.ResultPage{
			Movies: []domain.Movie{
				{ID: 1, Title: "Alien", ReleaseDate: "1979-05-25", VoteAverage: 8.1, Popularity: 50, PosterPath: "/alien.jpg"},
				{ID: 2, Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 7.9, Popularity: 40},
				{ID: 3, Title: "Cats", ReleaseDate: "2019-12-20", VoteAverage: 4.2, Popularity: 30},
			},
			Page:       1,
			TotalPages: 3,
		}, nil
	}
	return &domain.ResultPage{
		Movies:     []domain.Movie{{ID: page * 10, Title: fmt.Sprintf("Page %d Movie", page)}},
		Page:       page,
		TotalPages: 3,
	}, nil
}

func (s *pagedSource) Search(_ context.Context, query string, page int) (*domain.ResultPage, error) {
	s.record(domain.PageRequest{Mode: domain.ModeSearch, Query: query, Page: page})
	if s.failWith != nil {
		return nil, s.failWith
	}
	return &domain.ResultPage{
		Movies:     []domain.Movie{{ID: 100 + page, Title: fmt.Sprintf("%s %d", query, page)}},
		Page:       page,
		TotalPages: 2,
	}, nil
}

func (s *pagedSource) record(req domain.PageRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
}

func (s *pagedSource) lastCall() domain.PageRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

type recordingOpener struct {
	opened []string
}

func (r *recordingOpener) Open(url string) error {
	r.opened = append(r.opened, url)
	return nil
}

func newTestModel(t *testing.T, src domain.MovieSource, op *recordingOpener) Model {
	t.Helper()
	logger := applog.NullLogger()

	var posters *service.PosterService
	if op != nil {
		posters = service.NewPosterService(op, "https://img.example/w500", logger)
	}

	m := NewModel(service.NewCatalogService(src, logger), posters, Options{
		ShowInspector: true,
		Logger:        logger,
	})
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fetchResult runs a fetch command and returns the result it reports
func fetchResult(t *testing.T, cmd tea.Cmd) browse.FetchResult {
	t.Helper()
	require.NotNil(t, cmd, "expected a fetch command")
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if r, ok := c().(browse.FetchResult); ok {
				return r
			}
		}
		t.Fatalf("no fetch result in batch")
	}
	r, ok := msg.(browse.FetchResult)
	require.True(t, ok, "expected browse.FetchResult, got %T", msg)
	return r
}

// mounted returns a model with discover page 1 loaded
func mounted(t *testing.T, src *pagedSource, op *recordingOpener) Model {
	t.Helper()
	m, cmd := sendCmd(t, newTestModel(t, src, op), browse.Mounted{})
	require.True(t, m.Browse.Loading)
	return send(t, m, fetchResult(t, cmd))
}

func TestModel_InitMounts(t *testing.T) {
	m := newTestModel(t, &pagedSource{}, nil)
	assert.NotNil(t, m.Init())
}

func TestModel_MountLoadsFirstPage(t *testing.T) {
	src := &pagedSource{}
	m := mounted(t, src, nil)

	assert.Equal(t, domain.PageRequest{Mode: domain.ModeDiscover, Page: 1}, src.lastCall())
	assert.False(t, m.Browse.Loading)
	assert.Len(t, m.Browse.Movies, 3)
	assert.Equal(t, 3, m.List.Count())

	view := m.View()
	assert.Contains(t, view, "Page 1 of 3")
	assert.Contains(t, view, "Alien")
	assert.Contains(t, view, "Popular movies")
}

func TestModel_Paging(t *testing.T) {
	src := &pagedSource{}
	m := mounted(t, src, nil)

	m, cmd := sendCmd(t, m, runes("n"))
	assert.Equal(t, 2, m.Browse.Page)
	m = send(t, m, fetchResult(t, cmd))
	assert.Equal(t, domain.PageRequest{Mode: domain.ModeDiscover, Page: 2}, src.lastCall())
	assert.Equal(t, "Page 2 Movie", m.Browse.Movies[0].Title)

	m, cmd = sendCmd(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.Browse.Page)
	assert.NotNil(t, cmd)

	m, cmd = sendCmd(t, m, runes("G"))
	assert.Equal(t, 3, m.Browse.Page)
	assert.NotNil(t, cmd)
}

func TestModel_PrevOnFirstPageDoesNothing(t *testing.T) {
	m := mounted(t, &pagedSource{}, nil)

	m, cmd := sendCmd(t, m, runes("p"))

	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Browse.Page)
	assert.False(t, m.Browse.Loading)
}

func TestModel_StaleResultIgnored(t *testing.T) {
	m := mounted(t, &pagedSource{}, nil)

	m, first := sendCmd(t, m, runes("n"))
	m, second := sendCmd(t, m, runes("n"))
	require.Equal(t, 3, m.Browse.Page)

	latest := fetchResult(t, second)
	stale := fetchResult(t, first)

	m = send(t, m, latest)
	m = send(t, m, stale)

	assert.Equal(t, "Page 3 Movie", m.Browse.Movies[0].Title)
	assert.False(t, m.Browse.Loading)
}

func TestModel_SearchSubmit(t *testing.T) {
	src := &pagedSource{}
	m := mounted(t, src, nil)

	m = send(t, m, runes("/"))
	require.True(t, m.SearchBar.Focused())

	// Typing alone never fetches
	m, cmd := sendCmd(t, m, runes("alien"))
	assert.Len(t, src.calls, 1)
	assert.False(t, m.Browse.Loading)

	m, cmd = sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.SearchBar.Focused())
	assert.Equal(t, "alien", m.Browse.Query)
	assert.Equal(t, domain.ModeSearch, m.Browse.Mode())

	m = send(t, m, fetchResult(t, cmd))
	assert.Equal(t, domain.PageRequest{Mode: domain.ModeSearch, Query: "alien", Page: 1}, src.lastCall())
	assert.Equal(t, []int{101}, movieIDs(m.Browse.Movies))

	// The next page appends in search mode
	m, cmd = sendCmd(t, m, runes("n"))
	m = send(t, m, fetchResult(t, cmd))
	assert.Equal(t, []int{101, 102}, movieIDs(m.Browse.Movies))
	assert.Contains(t, m.View(), `Results for "alien"`)
}

func TestModel_SearchPagingWaitsForLoad(t *testing.T) {
	src := &pagedSource{}
	m := mounted(t, src, nil)

	m = send(t, m, runes("/"))
	m = send(t, m, runes("alien"))
	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, fetchResult(t, cmd))

	m, next := sendCmd(t, m, runes("n"))
	require.True(t, m.Browse.Loading)

	// Going back while page 2 is pending would reorder the appended list
	m, cmd = sendCmd(t, m, runes("p"))
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.Browse.Page)

	m = send(t, m, fetchResult(t, next))
	assert.Equal(t, []int{101, 102}, movieIDs(m.Browse.Movies))
	assert.False(t, m.Browse.Loading)
}

func TestModel_BlankSearchIsNoOp(t *testing.T) {
	src := &pagedSource{}
	m := mounted(t, src, nil)

	m = send(t, m, runes("/"))
	m = send(t, m, runes("   "))
	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Len(t, src.calls, 1)
	assert.Equal(t, domain.ModeDiscover, m.Browse.Mode())
}

func TestModel_ClearSearch(t *testing.T) {
	src := &pagedSource{}
	m := mounted(t, src, nil)

	m = send(t, m, runes("/"))
	m = send(t, m, runes("heat"))
	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, fetchResult(t, cmd))

	m, cmd = sendCmd(t, m, runes("x"))
	assert.Equal(t, "", m.Browse.Query)
	assert.Equal(t, "", m.SearchBar.Value())
	m = send(t, m, fetchResult(t, cmd))

	assert.Equal(t, domain.PageRequest{Mode: domain.ModeDiscover, Page: 1}, src.lastCall())
	assert.Len(t, m.Browse.Movies, 3)
}

func TestModel_FetchErrorShownInFooter(t *testing.T) {
	src := &pagedSource{failWith: &domain.StatusError{StatusCode: 401, Message: "Invalid API key"}}
	m, cmd := sendCmd(t, newTestModel(t, src, nil), browse.Mounted{})
	m = send(t, m, fetchResult(t, cmd))

	assert.False(t, m.Browse.Loading)
	assert.Contains(t, m.Browse.Err, "401")
	assert.Contains(t, m.View(), "Error:")
	assert.Contains(t, m.View(), "Invalid API key")
}

func TestModel_SortModal(t *testing.T) {
	m := mounted(t, &pagedSource{}, nil)

	m = send(t, m, runes("s"))
	require.True(t, m.SortModal.IsVisible())

	// Three down from popularity is rating ascending
	for i := 0; i < 3; i++ {
		m = send(t, m, runes("j"))
	}
	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd, "sorting never fetches")
	assert.False(t, m.SortModal.IsVisible())
	assert.Equal(t, browse.SortRatingAsc, m.Browse.SortKey)
	assert.Equal(t, []int{3, 2, 1}, movieIDs(m.Browse.Movies))
}

func TestModel_LocalFilter(t *testing.T) {
	m := mounted(t, &pagedSource{}, nil)

	m = send(t, m, runes("f"))
	require.True(t, m.List.IsTyping())
	m = send(t, m, runes("heat"))

	assert.Equal(t, 1, m.List.Count())
	selected, ok := m.List.Selected()
	require.True(t, ok)
	assert.Equal(t, "Heat", selected.Title)
	assert.Len(t, m.Browse.Movies, 3, "filtering leaves the loaded list alone")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.List.IsFiltering())
	assert.Equal(t, 3, m.List.Count())
}

func TestModel_CursorAndInspector(t *testing.T) {
	m := mounted(t, &pagedSource{}, &recordingOpener{})

	m = send(t, m, runes("j"))
	selected, ok := m.List.Selected()
	require.True(t, ok)
	assert.Equal(t, "Heat", selected.Title)
	assert.Contains(t, m.View(), "themoviedb.org/movie/2")

	m = send(t, m, runes("i"))
	assert.False(t, m.ShowInspector)
	assert.NotContains(t, m.View(), "themoviedb.org/movie/2")
}

func TestModel_OpenPoster(t *testing.T) {
	op := &recordingOpener{}
	m := mounted(t, &pagedSource{}, op)

	m, cmd := sendCmd(t, m, runes("o"))
	require.NotNil(t, cmd)

	msg := cmd()
	opened, ok := msg.(PosterOpenedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "Alien", opened.Movie.Title)
	assert.Equal(t, []string{"https://img.example/w500/alien.jpg"}, op.opened)

	m = send(t, m, msg)
	assert.Equal(t, "Opened Alien", m.StatusMsg)
	m = send(t, m, ClearStatusMsg{})
	assert.Empty(t, m.StatusMsg)
}

func TestModel_RefreshRefetchesCurrentPage(t *testing.T) {
	src := &pagedSource{}
	m := mounted(t, src, nil)

	m, cmd := sendCmd(t, m, runes("r"))
	assert.True(t, m.Browse.Loading)
	send(t, m, fetchResult(t, cmd))

	assert.Len(t, src.calls, 2)
	assert.Equal(t, domain.PageRequest{Mode: domain.ModeDiscover, Page: 1}, src.lastCall())
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := mounted(t, &pagedSource{}, nil)

	m = send(t, m, runes("?"))
	assert.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "next page")

	m = send(t, m, runes("z"))
	assert.Equal(t, StateBrowsing, m.State)

	_, cmd := sendCmd(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func movieIDs(movies []domain.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}
