package extract

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinks(t *testing.T) {
	base, err := url.Parse("https://chem.example/catalog/")
	require.NoError(t, err)
	parser := NewLinkParser()

	t.Run("resolves relative links in document order", func(t *testing.T) {
		body := []byte(`<html><body>
			<a href="msds/toluene.pdf">Toluene</a>
			<a href="/sds/benzene.pdf">Benzene</a>
			<a href="https://other.example/sheet.pdf">External</a>
		</body></html>`)

		links, err := parser.Links(body, base)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://chem.example/catalog/msds/toluene.pdf",
			"https://chem.example/sds/benzene.pdf",
			"https://other.example/sheet.pdf",
		}, links)
	})

	t.Run("skips empty and missing hrefs", func(t *testing.T) {
		body := []byte(`<html><body>
			<a href="   ">blank</a>
			<a>no href</a>
			<a href="one.pdf">one</a>
		</body></html>`)

		links, err := parser.Links(body, base)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://chem.example/catalog/one.pdf"}, links)
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		body := []byte(`<a href="a.pdf">x</a><a href="a.pdf">y</a>`)

		links, err := parser.Links(body, base)
		require.NoError(t, err)
		assert.Len(t, links, 2)
	})

	t.Run("nil base keeps links as written", func(t *testing.T) {
		body := []byte(`<a href="https://chem.example/a.pdf">x</a>`)

		links, err := parser.Links(body, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://chem.example/a.pdf"}, links)
	})

	t.Run("no anchors yields no links", func(t *testing.T) {
		links, err := parser.Links([]byte("<p>nothing here</p>"), base)
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
