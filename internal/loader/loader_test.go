package loader

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", []byte("# B"))
	writeFile(t, dir, "a.TXT", []byte("A"))
	writeFile(t, dir, "skip.pdf", []byte("%PDF"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.md"), 0o755))

	l := New(nil, zap.NewNop())
	files, err := l.Collect(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.TXT"), filepath.Join(dir, "b.md")}, files)

	files, err = l.Collect(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Nil(t, files)

	only := New([]string{"md"}, nil)
	files, err = only.Collect(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.md")}, files)
}

func TestParseMarkdown(t *testing.T) {
	md := `---
title: Graph Notes
tags: [Go, notes]
date: 2024-01-15
---
# Ignored Heading

Some **bold** text about [graphs](https://example.com/graphs) and #graph.

- item one
- item two

` + "```go\nfmt.Println(\"hidden\")\n```\n" + `See https://go.dev for more.
`
	path := writeFile(t, t.TempDir(), "notes.md", []byte(md))

	doc, err := New(nil, nil).Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "notes.md", doc.Name)
	assert.Equal(t, "markdown", doc.Type)
	assert.Equal(t, "Graph Notes", doc.Title)
	assert.Equal(t, []string{"Go", "notes", "graph"}, doc.Tags)
	assert.Equal(t, []string{"https://example.com/graphs", "https://go.dev"}, doc.Links)
	assert.Contains(t, doc.Metadata, "date")
	assert.Contains(t, doc.Content, "Some bold text about graphs")
	assert.Contains(t, doc.Content, "item one")
	assert.NotContains(t, doc.Content, "hidden")
	assert.NotContains(t, doc.Content, "---")
}

func TestParseMarkdown_TitleFallbacks(t *testing.T) {
	dir := t.TempDir()
	l := New(nil, nil)

	doc, err := l.Parse(writeFile(t, dir, "heading.md", []byte("intro\n# First Heading\n## Second")))
	require.NoError(t, err)
	assert.Equal(t, "First Heading", doc.Title)

	doc, err = l.Parse(writeFile(t, dir, "plain-name.md", []byte("no headings here")))
	require.NoError(t, err)
	assert.Equal(t, "plain-name", doc.Title)
	assert.Empty(t, doc.Metadata)
}

func TestParseText(t *testing.T) {
	dir := t.TempDir()
	l := New(nil, nil)

	doc, err := l.Parse(writeFile(t, dir, "memo.txt", []byte("\n\n  First line  \nsecond line\n")))
	require.NoError(t, err)
	assert.Equal(t, "text", doc.Type)
	assert.Equal(t, "First line", doc.Title)

	long := strings.Repeat("가", 150)
	doc, err = l.Parse(writeFile(t, dir, "long.txt", []byte(long)))
	require.NoError(t, err)
	assert.Equal(t, 100, len([]rune(doc.Title)))
}

func TestParseText_BOM(t *testing.T) {
	doc, err := New(nil, nil).Parse(writeFile(t, t.TempDir(), "bom.txt", []byte("\xEF\xBB\xBFTitle line\nbody\n")))
	require.NoError(t, err)
	assert.Equal(t, "Title line", doc.Title)
	assert.False(t, strings.HasPrefix(doc.Content, "\uFEFF"))
}

func TestParseText_EUCKR(t *testing.T) {
	// "한글" in EUC-KR
	data := []byte{0xC7, 0xD1, 0xB1, 0xDB}
	doc, err := New(nil, nil).Parse(writeFile(t, t.TempDir(), "legacy.txt", data))
	require.NoError(t, err)
	assert.Equal(t, "한글", doc.Content)
}

func TestParseCSV(t *testing.T) {
	var b strings.Builder
	b.WriteString("name,score\n")
	for i := 0; i < 105; i++ {
		b.WriteString("row,1\n")
	}
	doc, err := New(nil, nil).Parse(writeFile(t, t.TempDir(), "scores.csv", []byte(b.String())))
	require.NoError(t, err)

	assert.Equal(t, "csv", doc.Type)
	assert.Equal(t, "name", doc.Title)
	lines := strings.Split(doc.Content, "\n")
	assert.Equal(t, "name | score", lines[0])
	assert.Equal(t, "row | 1", lines[2])
	assert.Equal(t, "... (5 more rows)", lines[len(lines)-1])
	assert.Equal(t, 105, doc.Metadata["row_count"])
	assert.Equal(t, 2, doc.Metadata["column_count"])
}

func TestParseJSON(t *testing.T) {
	dir := t.TempDir()
	l := New(nil, nil)

	doc, err := l.Parse(writeFile(t, dir, "data.json", []byte(`{"name": "Project", "tags": ["a", "b"], "meta": {"owner": "kim"}}`)))
	require.NoError(t, err)
	assert.Equal(t, "Project", doc.Title)
	assert.Equal(t, "meta:\n  owner: kim\nname: Project\ntags:\n  - a\n  - b", doc.Content)

	doc, err = l.Parse(writeFile(t, dir, "broken.json", []byte(`{not json`)))
	require.NoError(t, err)
	assert.Equal(t, "broken", doc.Title)
	assert.Equal(t, "{not json", doc.Content)
	assert.Contains(t, doc.Metadata, "error")
}

func docxBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Quarterly</w:t></w:r><w:r><w:t xml:space="preserve"> Review</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Revenue grew.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestParseDocx(t *testing.T) {
	dir := t.TempDir()
	l := New(nil, nil)

	path := writeFile(t, dir, "review.docx", docxBytes(t, map[string]string{"word/document.xml": documentXML}))
	doc, err := l.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "docx", doc.Type)
	assert.Equal(t, "Quarterly Review", doc.Title)
	assert.Equal(t, "Quarterly Review\n\nRevenue grew.", doc.Content)
	assert.Equal(t, 2, doc.Metadata["paragraph_count"])

	core := `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/">
  <dc:title>Q3 Review</dc:title>
  <dc:creator>Lee</dc:creator>
  <dcterms:created>2024-07-01T09:00:00Z</dcterms:created>
</cp:coreProperties>`
	path = writeFile(t, dir, "withcore.docx", docxBytes(t, map[string]string{
		"word/document.xml":  documentXML,
		"docProps/core.xml": core,
	}))
	doc, err = l.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "Q3 Review", doc.Title)
	assert.Equal(t, "Lee", doc.Metadata["author"])
	assert.Equal(t, "2024-07-01T09:00:00Z", doc.Metadata["date"])
}

func TestParseDocx_Invalid(t *testing.T) {
	dir := t.TempDir()
	l := New(nil, nil)

	_, err := l.Parse(writeFile(t, dir, "bad.docx", []byte("not a zip")))
	assert.Error(t, err)

	_, err = l.Parse(writeFile(t, dir, "empty.docx", docxBytes(t, map[string]string{"other.xml": "<x/>"})))
	assert.ErrorContains(t, err, "word/document.xml")
}

func TestParse_Unsupported(t *testing.T) {
	_, err := New(nil, nil).Parse(writeFile(t, t.TempDir(), "slides.pptx", []byte("x")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadDir_SkipsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.md", []byte("# Good"))
	writeFile(t, dir, "bad.docx", []byte("broken"))

	docs, err := New(nil, nil).LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Good", docs[0].Title)
}
