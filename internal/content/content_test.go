package content

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContentIsValid(t *testing.T) {
	site := Default()
	require.NotNil(t, site)

	assert.Equal(t, 500*time.Millisecond, site.Nav.ScrollDuration)
	assert.Len(t, site.Nav.Links, 3)
	assert.Equal(t, AnchorContact, site.Nav.CTA.Anchor)
	assert.Equal(t, -2, site.Nav.CTA.Offset)
	for _, l := range site.Nav.MobileLinks {
		assert.Equal(t, -1, l.Offset, l.Label)
	}
	assert.Len(t, site.Services.Items, 3)
	assert.Len(t, site.Testimonials.Items, 3)
	assert.Equal(t, "info@thesocialayushi.com", site.Contact.Email)
}

func TestLoadEmptyPathUsesEmbedded(t *testing.T) {
	site, err := Load("  ")
	require.NoError(t, err)
	assert.Equal(t, Default().Brand, site.Brand)
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	base := string(defaultYAML)
	cases := []struct {
		name string
		doc  string
	}{
		{name: "not yaml", doc: "brand: [unterminated"},
		{name: "empty document", doc: ""},
		{name: "unknown anchor", doc: strings.Replace(base, "anchor: contact, offset: -2 }", "anchor: footer, offset: -2 }", 1)},
		{name: "bad email", doc: strings.Replace(base, "info@thesocialayushi.com", "not-an-email", 1)},
		{name: "rating out of range", doc: strings.Replace(base, "rating: 5", "rating: 9", 1)},
		{name: "bad duration", doc: strings.Replace(base, "scroll_duration: 500ms", "scroll_duration: soon", 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidContent)
		})
	}
}

func TestParseDefaultsScrollDuration(t *testing.T) {
	doc := strings.Replace(string(defaultYAML), "scroll_duration: 500ms", "scroll_duration: 0s", 1)
	site, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, DefaultScrollDuration, site.Nav.ScrollDuration)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestHolderReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, defaultYAML, 0o644))

	h := NewHolder(nil)
	before := h.Site()

	require.NoError(t, os.WriteFile(path, []byte("brand: ["), 0o644))
	assert.ErrorIs(t, h.Reload(path), ErrInvalidContent)
	assert.Same(t, before, h.Site())

	doc := strings.Replace(string(defaultYAML), "Happy Customers", "Kind Words", 1)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	require.NoError(t, h.Reload(path))
	assert.Equal(t, "Kind Words", h.Site().Testimonials.Title)
}

func TestWatchPicksUpEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, defaultYAML, 0o644))

	h := NewHolder(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, h.Watch(ctx, path, nil))

	doc := strings.Replace(string(defaultYAML), "My Services", "What I Do", 1)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	assert.Eventually(t, func() bool {
		return h.Site().Services.Title == "What I Do"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatchEmptyPathIsNoop(t *testing.T) {
	h := NewHolder(Default())
	assert.NoError(t, h.Watch(context.Background(), "", nil))
}
