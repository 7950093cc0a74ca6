package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
)

// DictionaryAdapter defines how message dictionaries are loaded.
type DictionaryAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter is a simple adapter that uses an in-memory map as the dictionary source
type MapAdapter struct {
	Data map[string]map[string]any
}

// Load implements the DictionaryAdapter interface
func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single dictionary file from disk.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a new FileAdapter instance.
// When parser is nil it is picked from the file extension.
// Returns nil if path is empty or no parser fits.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if path == "" {
		return nil
	}
	if parser == nil {
		parser = NewParserForFile(path)
	}
	if parser == nil {
		return nil
	}
	return &FileAdapter{parser: parser, path: path}
}

// Load implements the DictionaryAdapter interface
func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a == nil {
		return nil, ErrNilAdapter
	}
	content, err := readWithContext(ctx, func() ([]byte, error) { return os.ReadFile(a.path) })
	if err != nil {
		return nil, err
	}
	return parseContent(ctx, a.parser, a.path, content)
}

// FSAdapter loads every supported dictionary file found directly inside dir of an fs.FS.
// It serves plain directories (NewDirectoryAdapter) and embed.FS alike (NewEmbeddedFsAdapter).
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
}

// NewDirectoryAdapter creates an adapter for a directory on disk.
// When parser is nil each file gets the parser matching its extension.
// Returns nil if path is empty.
func NewDirectoryAdapter(parser Parser, path string) *FSAdapter {
	if path == "" {
		return nil
	}
	return &FSAdapter{parser: parser, fsys: os.DirFS(path), dir: "."}
}

// NewEmbeddedFsAdapter creates an adapter reading dir from fsys (typically an embed.FS).
// When parser is nil each file gets the parser matching its extension.
// Returns nil if fsys is nil or dir is empty.
func NewEmbeddedFsAdapter(parser Parser, fsys fs.FS, dir string) *FSAdapter {
	if fsys == nil || dir == "" {
		return nil
	}
	return &FSAdapter{parser: parser, fsys: fsys, dir: dir}
}

// Load implements the DictionaryAdapter interface.
// fs.ReadDir yields files in name order, so later files override earlier ones deterministically.
func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a == nil {
		return nil, ErrNilAdapter
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingDirectoryCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	all := make(map[string]map[string]any)
	loaded := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		parser := a.parserFor(entry.Name())
		if parser == nil {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingDirectoryCancelled, err)
		}

		filePath := path.Join(a.dir, entry.Name())
		content, err := readWithContext(ctx, func() ([]byte, error) { return fs.ReadFile(a.fsys, filePath) })
		if err != nil {
			return nil, err
		}

		dict, err := parseContent(ctx, parser, filePath, content)
		if err != nil {
			return nil, err
		}

		Merge(all, dict)
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoDictionaryFiles, a.dir)
	}

	return all, nil
}

func (a *FSAdapter) parserFor(name string) Parser {
	ext := filepath.Ext(name)
	if ext == "" {
		return nil
	}
	if a.parser != nil {
		if a.parser.SupportsFileExtension(ext) {
			return a.parser
		}
		return nil
	}
	return NewParserForFile(name)
}

// Merge copies every locale of src into dst, overwriting keys that exist in both.
func Merge(dst, src map[string]map[string]any) {
	for locale, messages := range src {
		if dst[locale] == nil {
			dst[locale] = make(map[string]any, len(messages))
		}
		maps.Copy(dst[locale], messages)
	}
}

// readWithContext runs read in a goroutine so a cancelled ctx does not wait on slow storage.
func readWithContext(ctx context.Context, read func() ([]byte, error)) ([]byte, error) {
	done := make(chan struct{})
	var content []byte
	var readErr error

	go func() {
		content, readErr = read()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Join(ErrLoadingFileCancelled, ctx.Err())
	case <-done:
	}

	if readErr != nil {
		return nil, errors.Join(ErrFailedToReadFile, readErr)
	}
	return content, nil
}

func parseContent(ctx context.Context, parser Parser, name string, content []byte) (map[string]map[string]any, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, name)
	}

	dict, err := parser.Parse(ctx, string(content))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, err)
	}
	return dict, nil
}
