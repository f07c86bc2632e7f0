package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/domain"
)

// fakeSource records calls and returns canned pages
type fakeSource struct {
	calls []string
	page  *domain.ResultPage
	err   error
}

func (f *fakeSource) Discover(ctx context.Context, page int) (*domain.ResultPage, error) {
	f.calls = append(f.calls, "discover")
	return f.page, f.err
}

func (f *fakeSource) Search(ctx context.Context, query string, page int) (*domain.ResultPage, error) {
	f.calls = append(f.calls, "search:"+query)
	return f.page, f.err
}

func TestCatalogService_Dispatch(t *testing.T) {
	src := &fakeSource{page: &domain.ResultPage{Movies: []domain.Movie{{ID: 1}}, TotalPages: 1}}
	svc := NewCatalogService(src, nil)
	ctx := context.Background()

	page, err := svc.FetchPage(ctx, domain.PageRequest{Mode: domain.ModeDiscover, Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Movies, 1)

	_, err = svc.FetchPage(ctx, domain.PageRequest{Mode: domain.ModeSearch, Query: "heat", Page: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"discover", "search:heat"}, src.calls)
}

func TestCatalogService_PropagatesErrors(t *testing.T) {
	src := &fakeSource{err: &domain.StatusError{StatusCode: 401}}
	svc := NewCatalogService(src, nil)

	_, err := svc.FetchPage(context.Background(), domain.PageRequest{Mode: domain.ModeDiscover, Page: 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuthFailed))
}

func TestCatalogService_UnknownMode(t *testing.T) {
	src := &fakeSource{}
	svc := NewCatalogService(src, nil)

	_, err := svc.FetchPage(context.Background(), domain.PageRequest{Mode: domain.FetchMode(9)})

	assert.Error(t, err)
	assert.Empty(t, src.calls)
}
