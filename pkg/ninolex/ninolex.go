// Package ninolex looks up canonical pronunciations of Ghanaian proper
// nouns and terms in the ninolex-gh dictionary.
//
// The dictionary is loaded lazily on first use. Keys are compared after
// Unicode NFC normalization, trimming and lower-casing, so "Accra",
// " ACCRA " and "accra" resolve to the same entry. When several entries
// share a key, the last one loaded wins.
//
//	e, err := ninolex.Lookup("Kumasi")
//	if errors.Is(err, ninolex.ErrNotFound) {
//		...
//	}
package ninolex

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/ninolex-gh/internal/artifact"
	"github.com/heartmarshall/ninolex-gh/internal/domain"
)

// Version of the bundled dictionary data format.
const Version = "0.1.0"

const embeddedName = "data/ninolex_gh_dictionary.json"

//go:embed data/ninolex_gh_dictionary.json
var embedded embed.FS

// Entry is one dictionary record.
type Entry = domain.Entry

// WordNotFoundError reports a lookup miss. It matches ErrNotFound.
type WordNotFoundError = domain.WordNotFoundError

// ErrNotFound is matched by every lookup miss.
var ErrNotFound = domain.ErrNotFound

// Loader returns the dictionary entries in artifact order.
type Loader func() ([]Entry, error)

type index struct {
	byKey     map[string]Entry
	graphemes []string
}

func newIndex(entries []Entry) *index {
	idx := &index{
		byKey:     make(map[string]Entry, len(entries)),
		graphemes: make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		idx.byKey[domain.NormalizeKey(e.Grapheme)] = e
		idx.graphemes = append(idx.graphemes, e.Grapheme)
	}
	return idx
}

// Service answers lookups against one dictionary artifact. It is safe for
// concurrent use. Concurrent first callers share a single load; a failed
// load is not remembered and the next call tries again.
type Service struct {
	load  Loader
	group singleflight.Group
	idx   atomic.Pointer[index]
}

// New creates a Service backed by load.
func New(load Loader) *Service {
	return &Service{load: load}
}

// FromFile creates a Service over a JSON artifact on disk.
func FromFile(path string) *Service {
	return New(func() ([]Entry, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("ninolex: open %s: %w", path, err)
		}
		defer f.Close()
		entries, err := artifact.ReadJSON(f)
		if err != nil {
			return nil, fmt.Errorf("ninolex: decode %s: %w", path, err)
		}
		return entries, nil
	})
}

// FromFS creates a Service over a JSON artifact in fsys.
func FromFS(fsys fs.FS, name string) *Service {
	return New(func() ([]Entry, error) {
		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("ninolex: open %s: %w", name, err)
		}
		defer f.Close()
		entries, err := artifact.ReadJSON(f)
		if err != nil {
			return nil, fmt.Errorf("ninolex: decode %s: %w", name, err)
		}
		return entries, nil
	})
}

// Embedded creates a Service over the dictionary bundled with this package.
func Embedded() *Service {
	return FromFS(embedded, embeddedName)
}

func (s *Service) index() (*index, error) {
	if idx := s.idx.Load(); idx != nil {
		return idx, nil
	}

	v, err, _ := s.group.Do("load", func() (any, error) {
		if idx := s.idx.Load(); idx != nil {
			return idx, nil
		}
		entries, err := s.load()
		if err != nil {
			return nil, err
		}
		idx := newIndex(entries)
		s.idx.Store(idx)
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*index), nil
}

func (s *Service) find(word string) (Entry, bool, error) {
	idx, err := s.index()
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := idx.byKey[domain.NormalizeKey(word)]
	return e, ok, nil
}

// Lookup returns the entry for word. A miss returns *WordNotFoundError
// carrying word as given.
func (s *Service) Lookup(word string) (Entry, error) {
	e, ok, err := s.find(word)
	if err != nil {
		return Entry{}, err
	}
	if !ok {
		return Entry{}, &WordNotFoundError{Word: word}
	}
	return e, nil
}

// LookupOr returns a copy of the entry for word, or def unchanged on a
// miss. A nil def is returned as nil without error.
func (s *Service) LookupOr(word string, def *Entry) (*Entry, error) {
	e, ok, err := s.find(word)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	return &e, nil
}

// Kind tells how a Resolve call was answered.
type Kind int

const (
	NotFound Kind = iota
	Found
	DefaultUsed
)

func (k Kind) String() string {
	switch k {
	case Found:
		return "found"
	case DefaultUsed:
		return "default"
	default:
		return "not_found"
	}
}

// Default is an optional fallback for Resolve. The zero value is NoDefault,
// which differs from WithDefault(nil).
type Default struct {
	set   bool
	value *Entry
}

// NoDefault makes Resolve fail on a miss.
var NoDefault = Default{}

// WithDefault makes Resolve return v on a miss, even when v is nil.
func WithDefault(v *Entry) Default {
	return Default{set: true, value: v}
}

// Result is the answer of Resolve. Entry is nil for NotFound and may be
// nil for DefaultUsed.
type Result struct {
	Kind  Kind
	Entry *Entry
}

// Resolve looks up word and reports which of the three outcomes applied.
// NotFound always comes with a *WordNotFoundError.
func (s *Service) Resolve(word string, def Default) (Result, error) {
	e, ok, err := s.find(word)
	if err != nil {
		return Result{}, err
	}
	switch {
	case ok:
		return Result{Kind: Found, Entry: &e}, nil
	case def.set:
		return Result{Kind: DefaultUsed, Entry: def.value}, nil
	default:
		return Result{Kind: NotFound}, &WordNotFoundError{Word: word}
	}
}

// EntryCount returns the number of distinct lookup keys. Entries that
// collide on a key count once.
func (s *Service) EntryCount() (int, error) {
	idx, err := s.index()
	if err != nil {
		return 0, err
	}
	return len(idx.byKey), nil
}

// Graphemes returns every grapheme in artifact order, including entries
// shadowed by a later one with the same key.
func (s *Service) Graphemes() ([]string, error) {
	idx, err := s.index()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(idx.graphemes))
	copy(out, idx.graphemes)
	return out, nil
}

// Ping loads the dictionary if needed and reports whether it is usable.
func (s *Service) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.index()
	return err
}

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

var std = Embedded()

// Lookup looks up word in the bundled dictionary.
func Lookup(word string) (Entry, error) { return std.Lookup(word) }

// LookupOr looks up word in the bundled dictionary, returning def on a miss.
func LookupOr(word string, def *Entry) (*Entry, error) { return std.LookupOr(word, def) }

// Resolve is Service.Resolve over the bundled dictionary.
func Resolve(word string, def Default) (Result, error) { return std.Resolve(word, def) }

// EntryCount returns the number of distinct keys in the bundled dictionary.
func EntryCount() (int, error) { return std.EntryCount() }

// Graphemes lists every grapheme of the bundled dictionary in order.
func Graphemes() ([]string, error) { return std.Graphemes() }
