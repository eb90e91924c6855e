// Package epub extracts content from EPUB uploads. An EPUB is a ZIP
// archive of XHTML documents described by an OPF package file.
package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"html"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/recall-labs/recall/internal/core/domain"
	"github.com/recall-labs/recall/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles EPUB files.
type Extractor struct{}

// New creates a new EPUB extractor.
func New() *Extractor {
	return &Extractor{}
}

// FileType returns the format this extractor handles.
func (e *Extractor) FileType() domain.FileType {
	return domain.FileTypeEPUB
}

// Extract walks the spine of the EPUB package and strips the XHTML of
// each chapter down to text, in reading order.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawFile) (*driven.ExtractResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, domain.ErrExtractionFailed
	}

	opfPath, err := rootfilePath(reader)
	if err != nil {
		return nil, err
	}

	pkg, err := readPackage(reader, opfPath)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	chapters := 0
	for _, ref := range pkg.Spine.ItemRefs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		href, ok := pkg.hrefForID(ref.IDRef)
		if !ok {
			continue
		}

		// Manifest hrefs are relative to the OPF location.
		chapterPath := path.Join(path.Dir(opfPath), href)
		data, err := readArchiveFile(reader, chapterPath)
		if err != nil {
			continue
		}

		text := stripXHTML(string(data))
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
		chapters++
	}

	content := b.String()
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}

	title := strings.TrimSpace(pkg.Metadata.Title)
	if title == "" {
		title = titleFromFilename(raw.Filename)
	}

	return &driven.ExtractResult{
		Title:   title,
		Content: content,
		Metadata: map[string]any{
			"chapter_count": chapters,
		},
	}, nil
}

// containerXML mirrors META-INF/container.xml.
type containerXML struct {
	Rootfiles struct {
		Rootfile []struct {
			FullPath string `xml:"full-path,attr"`
		} `xml:"rootfile"`
	} `xml:"rootfiles"`
}

// packageXML mirrors the OPF package document.
type packageXML struct {
	Metadata struct {
		Title string `xml:"title"`
	} `xml:"metadata"`
	Manifest struct {
		Items []manifestItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []itemRef `xml:"itemref"`
	} `xml:"spine"`
}

type manifestItem struct {
	ID   string `xml:"id,attr"`
	Href string `xml:"href,attr"`
}

type itemRef struct {
	IDRef string `xml:"idref,attr"`
}

// hrefForID resolves a spine reference to its manifest href.
func (p *packageXML) hrefForID(id string) (string, bool) {
	for _, item := range p.Manifest.Items {
		if item.ID == id {
			return item.Href, true
		}
	}
	return "", false
}

// rootfilePath locates the OPF package file via META-INF/container.xml.
func rootfilePath(reader *zip.Reader) (string, error) {
	data, err := readArchiveFile(reader, "META-INF/container.xml")
	if err != nil {
		return "", domain.ErrExtractionFailed
	}

	var container containerXML
	if err := xml.Unmarshal(data, &container); err != nil {
		return "", domain.ErrExtractionFailed
	}
	if len(container.Rootfiles.Rootfile) == 0 {
		return "", domain.ErrExtractionFailed
	}
	return container.Rootfiles.Rootfile[0].FullPath, nil
}

// readPackage parses the OPF package document.
func readPackage(reader *zip.Reader, opfPath string) (*packageXML, error) {
	data, err := readArchiveFile(reader, opfPath)
	if err != nil {
		return nil, domain.ErrExtractionFailed
	}

	var pkg packageXML
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return nil, domain.ErrExtractionFailed
	}
	return &pkg, nil
}

// readArchiveFile reads one file from the ZIP by exact name.
func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, domain.ErrNotFound
}

var (
	scriptBlocks = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	blockEnds    = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|section|article|blockquote)>`)
	lineBreaks   = regexp.MustCompile(`(?i)<br\s*/?>`)
	tags         = regexp.MustCompile(`<[^>]+>`)
	excessBlank  = regexp.MustCompile(`\n{3,}`)
	spaceRuns    = regexp.MustCompile(`[ \t]+`)
)

// stripXHTML reduces chapter markup to text, keeping paragraph breaks.
func stripXHTML(content string) string {
	content = scriptBlocks.ReplaceAllString(content, "")
	content = blockEnds.ReplaceAllString(content, "\n")
	content = lineBreaks.ReplaceAllString(content, "\n")
	content = tags.ReplaceAllString(content, " ")
	content = html.UnescapeString(content)
	content = spaceRuns.ReplaceAllString(content, " ")

	// Trim each line, drop the empties left behind by markup.
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	content = strings.Join(lines, "\n")
	content = excessBlank.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// titleFromFilename derives a human-readable title from a filename.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
