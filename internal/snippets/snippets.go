package snippets

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/san-kum/particlelab/internal/effect"
)

//go:embed data
var files embed.FS

type Tab string

const (
	HTML Tab = "html"
	CSS  Tab = "css"
	JS   Tab = "js"
)

func Tabs() []Tab { return []Tab{HTML, CSS, JS} }

func (t Tab) Valid() bool {
	return t == HTML || t == CSS || t == JS
}

// Snippet is the standalone reference implementation of one effect.
type Snippet struct {
	HTML string
	CSS  string
	JS   string
}

func (s Snippet) Tab(t Tab) string {
	switch t {
	case HTML:
		return s.HTML
	case CSS:
		return s.CSS
	case JS:
		return s.JS
	}
	return ""
}

// Bundle joins the three parts into one pasteable page fragment.
func (s Snippet) Bundle() string {
	return fmt.Sprintf("%s\n\n<style>\n%s\n</style>\n\n<script>\n%s\n</script>", s.HTML, s.CSS, s.JS)
}

var (
	loadOnce sync.Once
	table    map[effect.ID]Snippet
)

func load() {
	table = make(map[effect.ID]Snippet, len(effect.IDs()))
	for _, id := range effect.IDs() {
		table[id] = Snippet{
			HTML: read(id, HTML),
			CSS:  read(id, CSS),
			JS:   read(id, JS),
		}
	}
}

func read(id effect.ID, t Tab) string {
	data, err := files.ReadFile(fmt.Sprintf("data/%s.%s", id, t))
	if err != nil {
		panic(fmt.Sprintf("snippets: missing %s for %s: %v", t, id, err))
	}
	return strings.TrimSuffix(string(data), "\n")
}

// Lookup returns the reference snippet for id.
func Lookup(id effect.ID) (Snippet, bool) {
	loadOnce.Do(load)
	s, ok := table[id]
	return s, ok
}
