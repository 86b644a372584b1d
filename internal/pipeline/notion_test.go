package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipper struct {
	fail    map[string]bool
	clipped []string
}

func (c *fakeClipper) ClipPublication(_ context.Context, rec PublicationRecord) error {
	if c.fail[rec.Title] {
		return errBoom
	}
	c.clipped = append(c.clipped, rec.Title)
	return nil
}

func TestClipAllContinuesAfterFailure(t *testing.T) {
	c := &fakeClipper{fail: map[string]bool{"b": true}}
	records := []PublicationRecord{{Title: "a"}, {Title: "b"}, {Title: "c"}}

	n := ClipAll(context.Background(), c, records, nil)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "c"}, c.clipped)
}

func TestPublicationProperties(t *testing.T) {
	rec := PublicationRecord{
		Title:       "Example Paper",
		ScholarLink: "https://scholar.google.com/citations?view_op=view_citation&X",
		Authors:     "A. One, B. Two",
		Venue:       "Proc. Foo",
		Year:        "2020",
	}

	props := publicationProperties(rec)
	_, hasSource := props["Source Link"]
	assert.False(t, hasSource, "empty source link must be omitted")

	title, ok := props["Title"].(notionapi.TitleProperty)
	require.True(t, ok)
	assert.Equal(t, "Example Paper", title.Title[0].Text.Content)

	link, ok := props["Scholar Link"].(notionapi.URLProperty)
	require.True(t, ok)
	assert.Equal(t, rec.ScholarLink, link.URL)

	rec.SourceLink = "https://arxiv.org/abs/1234.5678"
	props = publicationProperties(rec)
	src, ok := props["Source Link"].(notionapi.URLProperty)
	require.True(t, ok)
	assert.Equal(t, rec.SourceLink, src.URL)
}

func TestPublicationPropertyConfigsMatchProperties(t *testing.T) {
	cfgs := publicationPropertyConfigs()
	props := publicationProperties(PublicationRecord{SourceLink: "https://x"})
	for name := range props {
		_, ok := cfgs[name]
		assert.True(t, ok, "property %q has no column", name)
	}
}

func TestRichTextTruncates(t *testing.T) {
	long := strings.Repeat("あ", notionTextLimit+10)
	got := richText(long)[0].Text.Content
	assert.Equal(t, notionTextLimit, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestNotionClipperRequiresTokenAndDatabase(t *testing.T) {
	_, err := NewNotionClipper("", "", nil)
	assert.Error(t, err)

	nc, err := NewNotionClipper("secret", "", nil)
	require.NoError(t, err)
	assert.Empty(t, nc.DatabaseID())
	assert.EqualError(t, nc.ClipPublication(context.Background(), PublicationRecord{}), "database ID not set")

	_, err = nc.CreateDatabase(context.Background(), "")
	assert.Error(t, err)
}

func TestNotionClipperStopsOnCanceledContext(t *testing.T) {
	nc, err := NewNotionClipper("secret", "db", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = nc.ClipPublication(ctx, PublicationRecord{Title: "a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
