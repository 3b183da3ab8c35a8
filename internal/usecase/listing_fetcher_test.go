package usecase

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/user/article-backup/internal/entity"
)

func TestParsePostRefs(t *testing.T) {
	html := `<html><body>
<article class="ItemLink"><div class="ItemLink__title"><a href="/alice/items/newest">Newest</a></div></article>
<article class="ItemLink"><div class="ItemLink__title"><a>No link</a></div></article>
<article class="ItemLink"><div class="ItemLink__title"><a href="https://qiita.com/alice/items/older">Older</a></div></article>
<div class="ItemLink__title"><a href="/alice/items/not-an-article">Sidebar</a></div>
</body></html>`

	refs, err := ParsePostRefs(html, "https://qiita.com/alice", DefaultSelectors().PostLink)
	require.NoError(t, err)

	expected := []entity.PostRef{
		{Permalink: "https://qiita.com/alice/items/newest"},
		{Permalink: "https://qiita.com/alice/items/older"},
	}
	if diff := cmp.Diff(expected, refs); diff != "" {
		t.Errorf("refs mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePostRefsEmpty(t *testing.T) {
	refs, err := ParsePostRefs("<html><body><p>nothing yet</p></body></html>", "https://qiita.com/alice", DefaultSelectors().PostLink)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestListingFetcher(t *testing.T) {
	posts := []fakePost{{slug: "b", title: "B"}, {slug: "a", title: "A"}}
	browser := newFakeSite("alice", "secret", posts)
	lister := NewListingFetcher(browser, testBaseURL, DefaultSelectors(), zaptest.NewLogger(t))

	refs, err := lister.FetchPostRefs(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, []entity.PostRef{
		{Permalink: testBaseURL + "/alice/items/b"},
		{Permalink: testBaseURL + "/alice/items/a"},
	}, refs)
	assert.Equal(t, []string{testBaseURL + "/alice"}, browser.navigations)
}

func TestListingFetcherNoPosts(t *testing.T) {
	browser := newFakeSite("alice", "secret", nil)
	lister := NewListingFetcher(browser, testBaseURL, DefaultSelectors(), zaptest.NewLogger(t))

	refs, err := lister.FetchPostRefs(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestListingFetcherRejectsEmptyAccount(t *testing.T) {
	lister := NewListingFetcher(newFakeBrowser(), testBaseURL, DefaultSelectors(), zaptest.NewLogger(t))

	_, err := lister.FetchPostRefs(context.Background(), "")
	require.Error(t, err)
}
