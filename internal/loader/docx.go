package loader

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/agenthands/kgraph/internal/core/model"
)

const (
	docxBody = "word/document.xml"
	docxCore = "docProps/core.xml"
)

// parseDocx reads paragraph text from word/document.xml and the title,
// author and creation date from docProps/core.xml when present.
func parseDocx(data []byte, doc *model.Document) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("not a docx archive: %w", err)
	}

	body, err := readZipXML(zr, docxBody)
	if err != nil {
		return err
	}
	if body == nil {
		return fmt.Errorf("missing %s", docxBody)
	}

	var paragraphs []string
	for _, p := range body.FindElements("//w:p") {
		var b strings.Builder
		for _, el := range p.FindElements(".//*") {
			switch el.Tag {
			case "t":
				b.WriteString(el.Text())
			case "tab":
				b.WriteByte('\t')
			}
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	doc.Content = strings.Join(paragraphs, "\n\n")
	if len(paragraphs) > 0 {
		doc.Title = paragraphs[0]
	}

	doc.Metadata = map[string]any{"paragraph_count": len(paragraphs)}
	core, err := readZipXML(zr, docxCore)
	if err != nil || core == nil {
		return nil
	}
	if el := core.FindElement("//dc:title"); el != nil && strings.TrimSpace(el.Text()) != "" {
		doc.Title = strings.TrimSpace(el.Text())
	}
	if el := core.FindElement("//dc:creator"); el != nil {
		doc.Metadata["author"] = el.Text()
	}
	if el := core.FindElement("//dcterms:created"); el != nil {
		doc.Metadata["date"] = strings.TrimSpace(el.Text())
	}
	return nil
}

// readZipXML returns nil, nil when name is not in the archive.
func readZipXML(zr *zip.Reader, name string) (*etree.Document, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		x := etree.NewDocument()
		if err := x.ReadFromBytes(data); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		return x, nil
	}
	return nil, nil
}
