package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/fuzzkit/genstage/pkg/fs"
)

// FileStore is a directory-backed [Store]. Entry idx lives at
// "<dir>/<idx>.input" (raw bytes, written once at seeding time),
// "<dir>/<idx>.meta.json" (novelty metadata, also written at seeding
// time — the stage only reads it), and, once generalized,
// "<dir>/<idx>.gen" (the GEN1 binary envelope, written by the stage).
type FileStore struct {
	dir    string
	fsys   fs.FS
	writer *fs.AtomicWriter
}

// NewFileStore returns a FileStore rooted at dir, using fsys for all
// file I/O. Panics if fsys is nil.
func NewFileStore(dir string, fsys fs.FS) *FileStore {
	if fsys == nil {
		panic("fsys is nil")
	}

	return &FileStore{dir: dir, fsys: fsys, writer: fs.NewAtomicWriter(fsys)}
}

// Seed writes a fresh entry's raw bytes and novelty metadata to disk,
// the one-time setup step that in a real fuzzer the corpus store and
// feedback pipeline would have already done before the stage ever
// sees the entry.
func (s *FileStore) Seed(idx int, bytes []byte, meta Metadata) error {
	if err := s.fsys.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %q: %w", s.dir, err)
	}

	if err := s.fsys.WriteFile(s.inputPath(idx), bytes, 0o644); err != nil {
		return fmt.Errorf("write input %d: %w", idx, err)
	}

	metaJSON, err := json.Marshal(metaDoc{Novelties: meta.Novelties, Reason: meta.Reason})
	if err != nil {
		return fmt.Errorf("marshal metadata %d: %w", idx, err)
	}

	if err := s.fsys.WriteFile(s.metaPath(idx), metaJSON, 0o644); err != nil {
		return fmt.Errorf("write metadata %d: %w", idx, err)
	}

	return nil
}

// Entry implements [Store].
func (s *FileStore) Entry(idx int) (Entry, error) {
	if _, err := s.fsys.ReadFile(s.inputPath(idx)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %d", ErrNotFound, idx)
		}

		return nil, fmt.Errorf("stat entry %d: %w", idx, err)
	}

	return &fileEntry{store: s, idx: idx}, nil
}

// Indices returns the sorted list of entry indices present in the
// store, discovered by scanning for "<idx>.input" files. Used by the
// CLI to drive "run" over an entire corpus directory.
func (s *FileStore) Indices() ([]int, error) {
	entries, err := s.fsys.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read corpus dir %q: %w", s.dir, err)
	}

	var out []int

	for _, e := range entries {
		name := e.Name()

		idxStr, ok := strings.CutSuffix(name, ".input")
		if !ok {
			continue
		}

		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			continue
		}

		out = append(out, idx)
	}

	sort.Ints(out)

	return out, nil
}

func (s *FileStore) inputPath(idx int) string {
	return filepath.Join(s.dir, strconv.Itoa(idx)+".input")
}

func (s *FileStore) genPath(idx int) string {
	return filepath.Join(s.dir, strconv.Itoa(idx)+".gen")
}

func (s *FileStore) metaPath(idx int) string {
	return filepath.Join(s.dir, strconv.Itoa(idx)+".meta.json")
}

// metaDoc is the on-disk JSON shape of Metadata. It is intentionally a
// separate type from Metadata so the wire format doesn't shift if the
// in-memory struct grows fields that shouldn't be persisted.
type metaDoc struct {
	Novelties []int  `json:"novelties"`
	Reason    string `json:"reason,omitempty"`
}

type fileEntry struct {
	store *FileStore
	idx   int
}

func (e *fileEntry) LoadInput() (Input, error) {
	raw, err := e.store.fsys.ReadFile(e.store.inputPath(e.idx))
	if err != nil {
		return Input{}, fmt.Errorf("read input %d: %w", e.idx, err)
	}

	in := Input{Bytes: raw}

	genData, err := e.store.fsys.ReadFile(e.store.genPath(e.idx))
	if err == nil {
		tags, decodeErr := DecodeSlots(genData)
		if decodeErr != nil {
			return Input{}, fmt.Errorf("decode generalized form %d: %w", e.idx, decodeErr)
		}

		in.Generalized = tags
	} else if !errors.Is(err, os.ErrNotExist) {
		return Input{}, fmt.Errorf("read generalized form %d: %w", e.idx, err)
	}

	return in, nil
}

func (e *fileEntry) StoreInput(in Input) error {
	if in.Generalized == nil {
		return nil
	}

	data := EncodeSlots(in.Generalized)
	if err := e.store.writer.WriteWithDefaults(e.store.genPath(e.idx), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("persist generalized form %d: %w", e.idx, err)
	}

	return nil
}

func (e *fileEntry) Metadata() (Metadata, bool) {
	data, err := e.store.fsys.ReadFile(e.store.metaPath(e.idx))
	if err != nil {
		return Metadata{}, false
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Metadata{}, false
	}

	var doc metaDoc
	if err := json.Unmarshal(standardized, &doc); err != nil {
		return Metadata{}, false
	}

	return Metadata{Novelties: doc.Novelties, Reason: doc.Reason}, true
}
