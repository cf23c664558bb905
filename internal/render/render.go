package render

import (
	"fmt"
	"io"
	"sort"

	"url2clash/internal/model"
)

// Renderer writes a sequence of descriptors as one output document.
type Renderer interface {
	Render(w io.Writer, proxies []model.Proxy) error
}

type Factory func() Renderer

var registry = make(map[string]Factory)

func Register(name string, factory Factory) {
	registry[name] = factory
}

func Get(name string) (Renderer, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("output format '%s' not found", name)
	}
	return factory(), nil
}

// Names lists the registered formats, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
