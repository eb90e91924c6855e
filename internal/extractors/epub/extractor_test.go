package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recall-labs/recall/internal/core/domain"
)

func buildEpub(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const containerXMLDoc = `<?xml version="1.0"?>
<container>
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const packageOPF = `<?xml version="1.0"?>
<package>
  <metadata>
    <title>The Go Book</title>
  </metadata>
  <manifest>
    <item id="ch1" href="chapter1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="chapter2.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="ch1"/>
    <itemref idref="ch2"/>
  </spine>
</package>`

func validEpub(t *testing.T) []byte {
	return buildEpub(t, map[string]string{
		"META-INF/container.xml": containerXMLDoc,
		"OEBPS/content.opf":      packageOPF,
		"OEBPS/chapter1.xhtml":   `<html><body><h1>Chapter One</h1><p>It begins &amp; continues.</p></body></html>`,
		"OEBPS/chapter2.xhtml":   `<html><body><p>The second chapter.</p></body></html>`,
	})
}

func TestExtract(t *testing.T) {
	e := New()

	result, err := e.Extract(context.Background(), &domain.RawFile{
		Filename: "book.epub",
		Content:  validEpub(t),
	})

	require.NoError(t, err)
	assert.Equal(t, "The Go Book", result.Title)
	assert.Contains(t, result.Content, "Chapter One")
	assert.Contains(t, result.Content, "It begins & continues.")
	assert.Contains(t, result.Content, "The second chapter.")
	assert.Equal(t, 2, result.Metadata["chapter_count"])

	// Spine order is reading order.
	assert.Less(t,
		bytes.Index([]byte(result.Content), []byte("Chapter One")),
		bytes.Index([]byte(result.Content), []byte("The second chapter.")))
}

func TestExtract_TitleFallsBackToFilename(t *testing.T) {
	e := New()

	opf := `<package><metadata></metadata>
<manifest><item id="ch1" href="c1.xhtml"/></manifest>
<spine><itemref idref="ch1"/></spine></package>`

	content := buildEpub(t, map[string]string{
		"META-INF/container.xml": containerXMLDoc,
		"OEBPS/content.opf":      opf,
		"OEBPS/c1.xhtml":         `<p>text</p>`,
	})

	result, err := e.Extract(context.Background(), &domain.RawFile{
		Filename: "my_travel-journal.epub",
		Content:  content,
	})

	require.NoError(t, err)
	assert.Equal(t, "my travel journal", result.Title)
}

func TestExtract_MissingContainer(t *testing.T) {
	e := New()

	content := buildEpub(t, map[string]string{
		"mimetype": "application/epub+zip",
	})

	_, err := e.Extract(context.Background(), &domain.RawFile{
		Filename: "broken.epub",
		Content:  content,
	})

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_NotAZip(t *testing.T) {
	e := New()

	_, err := e.Extract(context.Background(), &domain.RawFile{
		Filename: "fake.epub",
		Content:  []byte("plain text pretending"),
	})

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_EmptyChapters(t *testing.T) {
	e := New()

	content := buildEpub(t, map[string]string{
		"META-INF/container.xml": containerXMLDoc,
		"OEBPS/content.opf":      packageOPF,
		"OEBPS/chapter1.xhtml":   `<html><body></body></html>`,
		"OEBPS/chapter2.xhtml":   `<html><body>  </body></html>`,
	})

	_, err := e.Extract(context.Background(), &domain.RawFile{
		Filename: "hollow.epub",
		Content:  content,
	})

	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestStripXHTML(t *testing.T) {
	got := stripXHTML(`<div><p>One</p><p>Two &lt;escaped&gt;</p><br/>Three</div>`)
	assert.Contains(t, got, "One")
	assert.Contains(t, got, "Two <escaped>")
	assert.Contains(t, got, "Three")
	assert.NotContains(t, got, "<p>")
}

func TestFileType(t *testing.T) {
	assert.Equal(t, domain.FileTypeEPUB, New().FileType())
}
