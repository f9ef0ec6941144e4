package sketch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// markupExt is the extension of stored snippet files.
const markupExt = ".jsx"

// indexFile holds the snippet metadata index inside the data directory.
const indexFile = "index.yaml"

var ErrSnippetNotFound = errors.New("snippet not found")

// Snippet is one saved markup document. IDs are opaque keys assigned by the
// store; the editing core never interprets them.
type Snippet struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`

	// Markup is stored in its own file, not in the index.
	Markup string `json:"markup,omitempty" yaml:"-"`
}

// Store is a file-backed snippet store: markup in <id>.jsx files, metadata
// in a YAML index. The index is rewritten atomically on every change.
type Store struct {
	mu   sync.Mutex
	dir  string
	meta map[string]Snippet

	now func() time.Time // test hook
}

// NewStore opens (creating if needed) a store in dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dir: dir, meta: make(map[string]Snippet), now: time.Now}

	raw, err := os.ReadFile(filepath.Join(dir, indexFile))
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snippet index: %w", err)
	}
	var list []Snippet
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse snippet index: %w", err)
	}
	for _, sn := range list {
		s.meta[sn.ID] = sn
	}
	return s, nil
}

// Create stores a new snippet and returns it with its assigned id.
func (s *Store) Create(name, markup string) (Snippet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	sn := Snippet{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.writeMarkup(sn.ID, markup); err != nil {
		return Snippet{}, err
	}
	s.meta[sn.ID] = sn
	if err := s.saveIndexLocked(); err != nil {
		return Snippet{}, err
	}
	sn.Markup = markup
	return sn, nil
}

// Get returns the snippet with its markup loaded.
func (s *Store) Get(id string) (Snippet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sn, ok := s.meta[id]
	if !ok {
		return Snippet{}, ErrSnippetNotFound
	}
	raw, err := os.ReadFile(s.markupPath(id))
	if err != nil {
		return Snippet{}, fmt.Errorf("read snippet %s: %w", id, err)
	}
	sn.Markup = string(raw)
	return sn, nil
}

// Update replaces the snippet's markup and optionally renames it. An empty
// name keeps the current one.
func (s *Store) Update(id, name, markup string) (Snippet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sn, ok := s.meta[id]
	if !ok {
		return Snippet{}, ErrSnippetNotFound
	}
	if name != "" {
		sn.Name = name
	}
	sn.UpdatedAt = s.now().UTC()
	if err := s.writeMarkup(id, markup); err != nil {
		return Snippet{}, err
	}
	s.meta[id] = sn
	if err := s.saveIndexLocked(); err != nil {
		return Snippet{}, err
	}
	sn.Markup = markup
	return sn, nil
}

// Delete removes the snippet and its markup file.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meta[id]; !ok {
		return ErrSnippetNotFound
	}
	delete(s.meta, id)
	if err := os.Remove(s.markupPath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove snippet %s: %w", id, err)
	}
	return s.saveIndexLocked()
}

// List returns snippet metadata (no markup), most recently updated first.
func (s *Store) List() []Snippet {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Snippet, 0, len(s.meta))
	for _, sn := range s.meta {
		out = append(out, sn)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) markupPath(id string) string {
	return filepath.Join(s.dir, id+markupExt)
}

func (s *Store) writeMarkup(id, markup string) error {
	if err := os.WriteFile(s.markupPath(id), []byte(markup), 0o644); err != nil {
		return fmt.Errorf("write snippet %s: %w", id, err)
	}
	return nil
}

// saveIndexLocked rewrites the index via a temp file and rename so readers
// never observe a torn index. Called with s.mu held.
func (s *Store) saveIndexLocked() error {
	list := make([]Snippet, 0, len(s.meta))
	for _, sn := range s.meta {
		list = append(list, sn)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })

	raw, err := yaml.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode snippet index: %w", err)
	}

	tmp := filepath.Join(s.dir, indexFile+".tmp")
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snippet index: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, indexFile)); err != nil {
		return fmt.Errorf("replace snippet index: %w", err)
	}
	return nil
}
