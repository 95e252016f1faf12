package colormap

import (
	"embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templates embed.FS

// ErrUnknownFormat is returned when a formatter name is not registered.
var ErrUnknownFormat = errors.New("unknown format")

// Formatter renders a table in a particular output syntax. Formatters only
// lay out entries; they never change values or order.
type Formatter interface {
	// Name returns the format name (e.g., "cpp", "json").
	Name() string

	// Description returns a human-readable description of the format.
	Description() string

	// Format writes the table to w.
	Format(w io.Writer, t *Table) error
}

// Registry holds the available formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// DefaultRegistry returns a registry with every built-in formatter.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(newTemplateFormatter("cpp", "C++ std::vector<cv::Scalar> initialiser"))
	r.Register(newTemplateFormatter("c", "C static const uint8_t array"))
	r.Register(newTemplateFormatter("go", "Go [][3]uint8 variable"))
	r.Register(jsonFormatter{})
	r.Register(csvFormatter{})
	return r
}

// Register adds a formatter, replacing any with the same name.
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Name()] = f
}

// Get retrieves a formatter by name.
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnknownFormat, name, strings.Join(r.List(), ", "))
	}
	return f, nil
}

// List returns the registered format names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// templateData is what the source templates see.
type templateData struct {
	Name     string
	Label    string
	Gradient string
	Order    string
	Len      int
	Entries  []Triple
}

type templateFormatter struct {
	name        string
	description string
}

func newTemplateFormatter(name, description string) *templateFormatter {
	return &templateFormatter{name: name, description: description}
}

func (f *templateFormatter) Name() string {
	return f.name
}

func (f *templateFormatter) Description() string {
	return f.description
}

func (f *templateFormatter) Format(w io.Writer, t *Table) error {
	path := "templates/" + f.name + ".tmpl"
	tmpl, err := template.New(f.name + ".tmpl").Funcs(templateFuncs()).ParseFS(templates, path)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", path, err)
	}

	data := templateData{
		Name:     t.Name,
		Label:    t.Label(),
		Gradient: t.Gradient,
		Order:    strings.ToUpper(t.Order.String()),
		Len:      t.Len(),
		Entries:  t.Entries,
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", path, err)
	}
	return nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"triple": func(t Triple) string {
			return fmt.Sprintf("{ %3d, %3d, %3d }", t[0], t[1], t[2])
		},
	}
}

type jsonFormatter struct{}

func (jsonFormatter) Name() string {
	return "json"
}

func (jsonFormatter) Description() string {
	return "JSON document with metadata and entries"
}

// tableJSON represents the table in JSON format.
type tableJSON struct {
	Name     string   `json:"name"`
	Gradient string   `json:"gradient"`
	Order    string   `json:"order"`
	Reversed bool     `json:"reversed"`
	Length   int      `json:"length"`
	Entries  []Triple `json:"entries"`
}

func (jsonFormatter) Format(w io.Writer, t *Table) error {
	data, err := json.MarshalIndent(tableJSON{
		Name:     t.Name,
		Gradient: t.Gradient,
		Order:    t.Order.String(),
		Reversed: t.Reversed,
		Length:   t.Len(),
		Entries:  t.Entries,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

type csvFormatter struct{}

func (csvFormatter) Name() string {
	return "csv"
}

func (csvFormatter) Description() string {
	return "CSV with an index column and one column per channel"
}

func (csvFormatter) Format(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	header := []string{"index"}
	for _, ch := range t.Order.String() {
		header = append(header, string(ch))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, e := range t.Entries {
		row := []string{strconv.Itoa(i), strconv.Itoa(int(e[0])), strconv.Itoa(int(e[1])), strconv.Itoa(int(e[2]))}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
