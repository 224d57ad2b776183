package answers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// FileStore keeps one JSON document per namespace in a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("answers dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(namespace string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, namespace)
	return filepath.Join(f.dir, safe+".json")
}

func (f *FileStore) read(namespace string) (core.AnswerBook, error) {
	data, err := os.ReadFile(f.path(namespace))
	if errors.Is(err, fs.ErrNotExist) {
		return core.AnswerBook{}, nil
	}
	if err != nil {
		return nil, err
	}
	var book core.AnswerBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path(namespace), err)
	}
	if book == nil {
		book = core.AnswerBook{}
	}
	return book, nil
}

func (f *FileStore) write(namespace string, book core.AnswerBook) error {
	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, ".answers-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path(namespace))
}

func (f *FileStore) Load(ctx context.Context, namespace string) (core.AnswerBook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read(namespace)
}

func (f *FileStore) Get(ctx context.Context, namespace, id string) (core.AnswerSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	book, err := f.read(namespace)
	if err != nil {
		return core.AnswerSet{}, err
	}
	set, ok := book[id]
	if !ok {
		return core.AnswerSet{}, ErrNotFound
	}
	return set, nil
}

func (f *FileStore) Save(ctx context.Context, namespace, id string, set core.AnswerSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	book, err := f.read(namespace)
	if err != nil {
		return err
	}
	book[id] = set
	return f.write(namespace, book)
}

func (f *FileStore) Delete(ctx context.Context, namespace, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	book, err := f.read(namespace)
	if err != nil {
		return err
	}
	if _, ok := book[id]; !ok {
		return nil
	}
	delete(book, id)
	return f.write(namespace, book)
}

func (f *FileStore) Close() error { return nil }
