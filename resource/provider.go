package resource

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks

var (
	// ErrNotFound is returned when no asset exists for a GUID.
	ErrNotFound = zerr.New("resource not found")

	// ErrInvalidGUID is returned for GUIDs that escape the provider's root.
	ErrInvalidGUID = zerr.New("invalid resource guid")
)

// Provider resolves asset GUIDs to their encoded bytes.
type Provider interface {
	// ReadData returns the bytes of the asset named guid.
	ReadData(guid string) ([]byte, error)
}

// DirProvider serves assets from files below a root directory. The GUID is
// the slash-separated path relative to the root.
type DirProvider struct {
	root string
}

// NewDirProvider creates a provider rooted at dir.
func NewDirProvider(dir string) *DirProvider {
	return &DirProvider{root: dir}
}

// Root returns the provider's directory.
func (p *DirProvider) Root() string { return p.root }

// ReadData implements Provider.
func (p *DirProvider) ReadData(guid string) ([]byte, error) {
	name := filepath.FromSlash(strings.TrimPrefix(guid, "/"))
	if guid == "" || !filepath.IsLocal(name) {
		return nil, zerr.With(ErrInvalidGUID, "guid", guid)
	}
	data, err := os.ReadFile(filepath.Join(p.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(ErrNotFound, "guid", guid)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read resource"), "guid", guid)
	}
	return data, nil
}

// MemoryProvider serves assets from an in-memory map.
type MemoryProvider struct {
	data map[string][]byte
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{data: make(map[string][]byte)}
}

// Put stores data under guid, replacing any previous value.
func (p *MemoryProvider) Put(guid string, data []byte) {
	p.data[guid] = data
}

// GUIDs returns the stored GUIDs in sorted order.
func (p *MemoryProvider) GUIDs() []string {
	return slices.Sorted(maps.Keys(p.data))
}

// ReadData implements Provider.
func (p *MemoryProvider) ReadData(guid string) ([]byte, error) {
	data, ok := p.data[guid]
	if !ok {
		return nil, zerr.With(ErrNotFound, "guid", guid)
	}
	return data, nil
}
