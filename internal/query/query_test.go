package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleCategoryTwiceRestoresSet(t *testing.T) {
	s := NewState().ToggleCategory("Wisdom")
	before := s.Categories()

	s = s.ToggleCategory("Love").ToggleCategory("Love")

	assert.Equal(t, before, s.Categories())
	assert.True(t, s.HasCategory("Wisdom"))
	assert.False(t, s.HasCategory("Love"))
}

func TestToggleKeepsInsertionOrder(t *testing.T) {
	s := NewState().
		ToggleTag("a").
		ToggleTag("b").
		ToggleTag("c").
		ToggleTag("b")

	assert.Equal(t, []string{"a", "c"}, s.Tags())
}

func TestSnapshotsAreIndependent(t *testing.T) {
	base := NewState().ToggleCategory("Wisdom")
	a := base.ToggleCategory("Love")
	b := base.ToggleCategory("Hope")

	assert.Equal(t, []string{"Wisdom"}, base.Categories())
	assert.Equal(t, []string{"Wisdom", "Love"}, a.Categories())
	assert.Equal(t, []string{"Wisdom", "Hope"}, b.Categories())
}

func TestMutationsResetPage(t *testing.T) {
	s := NewState().SetPage(4)
	require.Equal(t, 4, s.Page())

	assert.Equal(t, 1, s.SetQuery("x").Page())
	assert.Equal(t, 1, s.ToggleCategory("x").Page())
	assert.Equal(t, 1, s.ToggleTag("x").Page())
	assert.Equal(t, 1, s.SetSort(SortRecent).Page())
	assert.Equal(t, 1, NewState().SetPage(-3).Page())
}

func TestSetSortKeepsOrder(t *testing.T) {
	s := NewState().SetSort(SortAuthor)
	assert.Equal(t, SortAuthor, s.Sort())
	assert.Equal(t, OrderDesc, s.Order())
}

func TestInitialStateRequest(t *testing.T) {
	req := Build(NewState())

	assert.Equal(t, SearchPath, req.Path)
	assert.Equal(t, "page=1&limit=20&sort=popularity&order=desc&facets=true", req.Encode())
	_, hasQ := req.Get(ParamQuery)
	assert.False(t, hasQ)
	assert.Empty(t, req.All(ParamCategories))
	assert.Empty(t, req.All(ParamTags))
}

func TestCategoriesThenQuery(t *testing.T) {
	s := NewState().
		ToggleCategory("Wisdom").
		ToggleCategory("Love").
		SetQuery("time")

	req := Build(s)
	decoded, err := url.QueryUnescape(req.Encode())
	require.NoError(t, err)

	assert.Equal(t,
		"page=1&limit=20&sort=popularity&order=desc&facets=true&q=time&categories[]=Wisdom&categories[]=Love",
		decoded)
	assert.Contains(t, decoded, "q=time&categories[]=Wisdom&categories[]=Love")
	assert.Equal(t, []string{"Wisdom", "Love"}, req.All(ParamCategories))
}

func TestQueryPresentOnlyWhenTrimmedNonEmpty(t *testing.T) {
	cases := map[string]bool{
		"":        false,
		"   ":     false,
		"\t\n":    false,
		"time":    true,
		"  time ": true,
	}
	for text, want := range cases {
		req := Build(NewState().SetQuery(text))
		q, ok := req.Get(ParamQuery)
		assert.Equal(t, want, ok, "query %q", text)
		if ok {
			assert.Equal(t, "time", q)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	s := NewState().
		SetQuery("love & war").
		ToggleTag("life").
		ToggleTag("hope").
		ToggleCategory("Wisdom").
		SetSort(SortLength)

	first := Build(s).Encode()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Build(s).Encode())
	}
	assert.Equal(t, Build(s).Key(), Build(s).Key())
}

func TestEncodeEscapesValues(t *testing.T) {
	req := Build(NewState().SetQuery("a&b=c").ToggleTag("x y"))
	values, err := url.ParseQuery(req.Encode())
	require.NoError(t, err)

	assert.Equal(t, "a&b=c", values.Get("q"))
	assert.Equal(t, []string{"x y"}, values["tags[]"])
}

func TestRequestURL(t *testing.T) {
	req := Build(NewState())

	u, err := req.URL("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/search?page=1&limit=20&sort=popularity&order=desc&facets=true", u)

	_, err = req.URL("localhost")
	assert.Error(t, err)
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("recent")
	require.NoError(t, err)
	assert.Equal(t, SortRecent, k)

	_, err = ParseSortKey("relevance")
	assert.Error(t, err)

	o, err := ParseSortOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, OrderAsc, o)
}

func TestPageAndLimitBounds(t *testing.T) {
	s := NewState().SetPage(0)
	assert.Equal(t, DefaultPage, s.Page())

	s = s.SetPage(3).SetLimit(-5)
	assert.Equal(t, DefaultLimit, s.Limit())
	// A new page size starts over
	assert.Equal(t, DefaultPage, s.Page())

	s = s.SetLimit(50).SetPage(2)
	assert.Equal(t, 50, s.Limit())
	assert.Equal(t, 2, s.Page())
}

func TestEqual(t *testing.T) {
	a := NewState().SetQuery("time").ToggleTag("life")
	b := NewState().ToggleTag("life").SetQuery("time")
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(b.ToggleTag("love")))
	assert.False(t, a.Equal(b.SetOrder(OrderAsc)))
}

func TestRequestAccessors(t *testing.T) {
	req := Build(NewState().SetQuery("love").ToggleCategory("Love").ToggleCategory("Life"))

	q, ok := req.Get(ParamQuery)
	require.True(t, ok)
	assert.Equal(t, "love", q)

	_, ok = req.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"Love", "Life"}, req.All(ParamCategories))
	assert.Empty(t, req.All(ParamTags))
	assert.Equal(t, SearchPath+"?"+req.Encode(), req.Key())
}
