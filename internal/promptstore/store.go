// Package promptstore loads and caches the System/Instruction prompt
// segments each LLM-backed stage sends to the model.
package promptstore

import (
	"embed"
	"io/fs"
	"regexp"
	"strings"
	"sync"

	domainerrors "github.com/smilemakc/namazing/internal/domain/errors"
)

//go:embed prompts/*.md
var embeddedPrompts embed.FS

// Segments is a prompt's parsed system and instruction sections.
type Segments struct {
	System      string
	Instruction string
}

var (
	systemPattern      = regexp.MustCompile(`(?is)System:\s*(.*?)\n\nInstruction:`)
	instructionPattern = regexp.MustCompile(`(?is)Instruction:\s*(.*)$`)
)

// Store loads slug.md prompt files from an fs.FS (defaulting to the
// module's embedded prompts) and caches the parsed result per slug.
type Store struct {
	files fs.FS

	mu    sync.Mutex
	cache map[string]Segments
}

// New creates a Store backed by the module's embedded prompt files.
func New() *Store {
	return &Store{files: embeddedPrompts, cache: make(map[string]Segments)}
}

// NewFromFS creates a Store backed by an arbitrary filesystem, letting
// callers override prompts without recompiling (e.g. an os.DirFS).
func NewFromFS(files fs.FS) *Store {
	return &Store{files: files, cache: make(map[string]Segments)}
}

// Load returns the parsed System/Instruction segments for slug,
// reading and parsing the file once per slug.
func (s *Store) Load(slug string) (Segments, error) {
	s.mu.Lock()
	if cached, ok := s.cache[slug]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	path := "prompts/" + slug + ".md"
	raw, err := fs.ReadFile(s.files, path)
	if err != nil {
		return Segments{}, domainerrors.Wrap(domainerrors.PromptNotFound, "prompt not found: "+slug, err)
	}

	segments := parse(string(raw))

	s.mu.Lock()
	s.cache[slug] = segments
	s.mu.Unlock()
	return segments, nil
}

// ClearCache drops every cached prompt, forcing the next Load to
// re-read and re-parse its file.
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]Segments)
}

func parse(raw string) Segments {
	segments := Segments{}

	if m := systemPattern.FindStringSubmatch(raw); len(m) > 1 {
		segments.System = strings.TrimSpace(m[1])
	}
	if m := instructionPattern.FindStringSubmatch(raw); len(m) > 1 {
		segments.Instruction = strings.TrimSpace(m[1])
	}

	return segments
}
