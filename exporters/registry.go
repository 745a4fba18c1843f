package exporters

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps format keys to renderers. It is immutable after construction,
// so concurrent lookups need no locking.
type Registry struct {
	byKey map[string]Renderer
	infos []Info
}

// NewRegistry registers renderers by lower-cased key. Registering the same key
// twice is a wiring bug and panics.
func NewRegistry(renderers ...Renderer) *Registry {
	reg := &Registry{byKey: make(map[string]Renderer, len(renderers))}
	for _, r := range renderers {
		if r == nil {
			continue
		}
		info := r.Info()
		key := strings.ToLower(strings.TrimSpace(info.Key))
		if key == "" {
			panic("exporters: renderer with empty key")
		}
		if _, dup := reg.byKey[key]; dup {
			panic(fmt.Sprintf("exporters: duplicate renderer key %q", key))
		}
		reg.byKey[key] = r
		reg.infos = append(reg.infos, info)
	}
	sort.SliceStable(reg.infos, func(i, j int) bool {
		return reg.infos[i].DisplayName < reg.infos[j].DisplayName
	})
	return reg
}

// Default returns a registry with every built-in format.
func Default() *Registry {
	return NewRegistry(
		NewCSVRenderer(),
		NewTXTRenderer(),
		NewJSONRenderer(),
		NewXMLRenderer(),
		NewPDFRenderer(),
	)
}

// ListAll returns renderer metadata sorted by display name.
func (r *Registry) ListAll() []Info {
	out := make([]Info, len(r.infos))
	copy(out, r.infos)
	return out
}

// Resolve finds a renderer by key, ignoring case.
func (r *Registry) Resolve(key string) (Renderer, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil, false
	}
	renderer, ok := r.byKey[key]
	return renderer, ok
}
