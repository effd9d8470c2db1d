package i18n

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
)

// TranslationAdapter loads translations from a source.
type TranslationAdapter interface {
	Load(ctx context.Context) (Translations, error)
}

// MapAdapter serves translations from memory.
type MapAdapter struct {
	Data Translations
}

func (a *MapAdapter) Load(_ context.Context) (Translations, error) {
	if a.Data == nil {
		return make(Translations), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single translation file from disk. The parser is
// chosen from the file extension.
type FileAdapter struct {
	path string
}

// NewFileAdapter returns an adapter for the file at path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (Translations, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	parser := ParserForFile(a.path)
	if parser == nil {
		return nil, errorf(ErrUnsupportedFileType, "%s", a.path)
	}
	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	translations, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, errorf(err, "%s", a.path))
	}
	return translations, nil
}

// FSAdapter loads every JSON and YAML file found directly in dir of an
// fs.FS, which is typically an embed.FS or os.DirFS. fs.ReadDir returns
// files in name order and later files override keys of earlier ones.
// Nested message trees are merged key by key.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

// NewFSAdapter returns an adapter reading dir from fsys.
func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (Translations, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	all := make(Translations)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := ParserForFile(entry.Name())
		if parser == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		parsed, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, errors.Join(ErrFailedToParseFile, errorf(err, "%s", name))
		}
		merge(all, parsed)
	}

	if len(all) == 0 {
		return nil, errorf(ErrNoTranslations, "directory %q", a.dir)
	}
	return all, nil
}

// ChainAdapter loads several adapters in order and merges their
// translations. Later adapters override individual keys of earlier ones.
type ChainAdapter struct {
	adapters []TranslationAdapter
}

// NewChainAdapter returns an adapter merging the given adapters.
func NewChainAdapter(adapters ...TranslationAdapter) *ChainAdapter {
	return &ChainAdapter{adapters: adapters}
}

func (a *ChainAdapter) Load(ctx context.Context) (Translations, error) {
	all := make(Translations)
	for _, adapter := range a.adapters {
		if adapter == nil {
			return nil, ErrNilAdapter
		}
		translations, err := adapter.Load(ctx)
		if err != nil {
			return nil, err
		}
		merge(all, translations)
	}
	return all, nil
}

func merge(dst, src Translations) {
	for lang, messages := range src {
		if dst[lang] == nil {
			dst[lang] = make(map[string]any, len(messages))
		}
		mergeTree(dst[lang], messages)
	}
}

func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		existing, ok := dst[k].(map[string]any)
		if !ok {
			existing = make(map[string]any, len(sub))
			dst[k] = existing
		}
		mergeTree(existing, sub)
	}
}
