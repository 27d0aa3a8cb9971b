package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// layoutFile wraps every page; pages define the "content" block.
const layoutFile = "layout.html"

// Templates returns the embedded page templates.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the embedded stylesheet directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// TemplateCache holds parsed templates
type TemplateCache struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		cache: make(map[string]*template.Template),
		funcs: make(template.FuncMap),
	}
}

// Load parses every page in fsys together with the layout.
func (tc *TemplateCache) Load(fsys fs.FS) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	for name, fn := range baseFuncs() {
		tc.funcs[name] = fn
	}

	files, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return err
	}
	for _, name := range files {
		if name == layoutFile {
			continue
		}
		tmpl, err := template.New(name).Funcs(tc.funcs).ParseFS(fsys, layoutFile, name)
		if err != nil {
			slog.Error("Failed to parse template", "file", name, "error", err)
			return err
		}
		tc.cache[name] = tmpl
		slog.Debug("Cached template", "name", name)
	}
	return nil
}

func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

func baseFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(currency string, amount float64) string {
			return currency + decimal.NewFromFloat(amount).StringFixed(2)
		},
		"decimal": func(d decimal.Decimal) string { return d.String() },
		"date": func(m models.Millis) string {
			if m == 0 {
				return ""
			}
			return m.Time().UTC().Format("Jan 2, 2006")
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.UTC().Format("Jan 2, 2006 15:04")
		},
		"day": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return ""
			}
			return t.UTC().Format("2006-01-02")
		},
		"optionLabel": func(opts []models.Option, value string) string {
			for _, o := range opts {
				if o.Value == value {
					return o.Label
				}
			}
			return value
		},
		"maskCard": func(number string) string {
			digits := strings.ReplaceAll(number, " ", "")
			if len(digits) <= 4 {
				return digits
			}
			return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
		},
		"derefInt": func(n *int) string {
			if n == nil {
				return ""
			}
			return fmt.Sprint(*n)
		},
	}
}
