// Package loader turns input files into model.Documents.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/core/model"
)

// ErrUnsupportedFormat is returned by Parse for unknown extensions.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DefaultExtensions are the formats Parse understands.
var DefaultExtensions = []string{".md", ".txt", ".csv", ".json", ".docx"}

var fileTypes = map[string]string{
	".md":   "markdown",
	".txt":  "text",
	".csv":  "csv",
	".json": "json",
	".docx": "docx",
}

type Loader struct {
	Extensions []string
	Logger     *zap.Logger
}

func New(extensions []string, logger *zap.Logger) *Loader {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{Extensions: extensions, Logger: logger}
}

// Collect lists the files directly inside dir with a wanted extension,
// sorted by path. A missing directory yields no files.
func (l *Loader) Collect(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read input directory '%s': %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !l.wants(filepath.Ext(entry.Name())) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (l *Loader) wants(ext string) bool {
	for _, e := range l.Extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Parse reads one file according to its extension.
func (l *Loader) Parse(path string) (model.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	fileType, ok := fileTypes[ext]
	if !ok {
		return model.Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read '%s': %w", path, err)
	}

	doc := model.Document{
		Path: path,
		Name: filepath.Base(path),
		Type: fileType,
	}
	switch ext {
	case ".md":
		err = parseMarkdown(data, &doc)
	case ".txt":
		err = parseText(data, &doc)
	case ".csv":
		err = parseCSV(data, &doc)
	case ".json":
		err = parseJSON(data, &doc)
	case ".docx":
		err = parseDocx(data, &doc)
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to parse '%s': %w", path, err)
	}
	if doc.Title == "" {
		doc.Title = stem(path)
	}
	return doc, nil
}

// LoadDir collects and parses every file in dir. Files that fail to parse
// are logged and skipped.
func (l *Loader) LoadDir(dir string) ([]model.Document, error) {
	files, err := l.Collect(dir)
	if err != nil {
		return nil, err
	}
	docs := make([]model.Document, 0, len(files))
	for _, f := range files {
		doc, err := l.Parse(f)
		if err != nil {
			l.Logger.Warn("skipping document", zap.String("path", f), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	l.Logger.Info("documents loaded", zap.String("dir", dir), zap.Int("files", len(files)), zap.Int("parsed", len(docs)))
	return docs, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
