package pages_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/entrhq/pagekit/pkg/config"
	"github.com/entrhq/pagekit/pkg/driver/drivertest"
	"github.com/entrhq/pagekit/pkg/pages"
	"github.com/entrhq/pagekit/pkg/session"
)

func newSession(t *testing.T, handle *drivertest.Handle) *session.Session {
	t.Helper()

	settings := config.Settings{
		EngineVariant:    config.EngineChromium,
		Headless:         true,
		BaseURL:          "https://example.com",
		DefaultTimeoutMs: 30000,
	}
	s, err := session.Create(context.Background(), handle, pages.DefaultRegistry(), settings, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(s.Destroy)
	return s
}

func TestDefaultRegistry(t *testing.T) {
	r := pages.DefaultRegistry()
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{
		"*pages.HomePage",
		"*pages.LoginPage",
		"*pages.SearchPage",
	}, r.TypeNames())
}

func TestHomePage(t *testing.T) {
	handle := &drivertest.Handle{}
	page := handle.Page()
	page.TitleValue = "Example Domain"
	page.ContentValue = `<html><head><title>Example Domain</title></head>` +
		`<body><p>Sample text.</p><a href="/more">More</a></body></html>`

	s := newSession(t, handle)

	home, err := session.Resolve[*pages.HomePage](s)
	require.NoError(t, err)

	title, err := home.GetTitle()
	require.NoError(t, err)
	assert.Equal(t, "Example Domain", title)

	doc, err := home.Document()
	require.NoError(t, err)
	assert.Equal(t, "Example Domain", doc.Title)
	assert.Contains(t, doc.Text, "Sample text.")

	assert.Equal(t, "https://example.com", home.URL())
}

func TestLoginPage(t *testing.T) {
	handle := &drivertest.Handle{}
	s := newSession(t, handle)

	login, err := session.Resolve[*pages.LoginPage](s)
	require.NoError(t, err)
	require.NoError(t, login.Login("alice", "s3cret"))

	assert.Equal(t, []string{
		"set_default_timeout",
		"goto https://example.com",
		"fill #username=alice",
		"fill #password=s3cret",
		`click button[type="submit"]`,
	}, handle.Page().CallLog())
}

func TestSearchPage(t *testing.T) {
	handle := &drivertest.Handle{}
	handle.Page().ContentValue = `<body>` +
		`<a href="https://example.com/a">Result A</a>` +
		`<a href="https://example.com/b">Result B</a>` +
		`</body>`

	s := newSession(t, handle)

	search, err := session.Resolve[*pages.SearchPage](s)
	require.NoError(t, err)
	require.NoError(t, search.Search("pagekit"))

	links, err := search.ResultLinks()
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "Result A", links[0].Text)
	assert.Equal(t, "https://example.com/b", links[1].Href)
}
