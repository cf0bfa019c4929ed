package clipboard

import (
	"fmt"
	"strings"

	cblog "github.com/charmbracelet/log"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/darksworm/gridsel/pkg/model"
)

// LineEnding terminates every line of delimited text, the last one included.
const LineEnding = "\r\n"

// Format is the clipboard payload encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown clipboard format %q", s)
}

// Options controls what a copy produces.
type Options struct {
	Enabled        bool   `toml:"enabled"`
	Separator      string `toml:"separator"`
	CopyHeaders    bool   `toml:"copy_headers"`
	CopyFormatters bool   `toml:"copy_formatters"`
	Format         Format `toml:"format,omitempty"`
}

// DefaultOptions copies tab separated, formatted values under a header line.
func DefaultOptions() Options {
	return Options{Enabled: true, Separator: "\t", CopyHeaders: true, CopyFormatters: true}
}

// Serialize renders rows as delimited text. Columns are the union of the
// rows' keys in first-seen order; a row lacking a key gets an empty field.
func Serialize(rows []model.DataRow, opts Options) string {
	if len(rows) == 0 {
		return ""
	}
	sep := opts.Separator
	if sep == "" {
		sep = "\t"
	}

	var keys []string
	seen := make(map[string]bool)
	for _, r := range rows {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}

	var b strings.Builder
	if opts.CopyHeaders {
		b.WriteString(strings.Join(keys, sep))
		b.WriteString(LineEnding)
	}
	fields := make([]string, len(keys))
	for _, r := range rows {
		for i, k := range keys {
			fields[i] = ""
			if v, ok := r.Get(k); ok && v != nil {
				fields[i] = fmt.Sprint(v)
			}
		}
		b.WriteString(strings.Join(fields, sep))
		b.WriteString(LineEnding)
	}
	return b.String()
}

// Encode renders rows in opts.Format. JSON is one array of objects on a
// single line and YAML a sequence of mappings; both keep each row's key
// order and end lines with "\n". Anything else is delimited text.
func Encode(rows []model.DataRow, opts Options) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	switch opts.Format {
	case FormatJSON:
		out := []byte("[]")
		for _, r := range rows {
			raw, err := r.MarshalJSON()
			if err != nil {
				return "", err
			}
			if out, err = sjson.SetRawBytes(out, "-1", raw); err != nil {
				return "", err
			}
		}
		return string(out) + "\n", nil
	case FormatYAML:
		out, err := yaml.Marshal(rows)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return Serialize(rows, opts), nil
}

// Source is where a Copier reads the selection from.
type Source interface {
	SelectedData(formatted, headers bool) []model.DataRow
}

// Copier turns the current selection into clipboard text. OnCopying sees
// every copy before it happens and may veto it.
type Copier struct {
	Options   Options
	OnCopying func(*model.CopyingMsg)
}

// NewCopier creates a Copier with the given options.
func NewCopier(opts Options) *Copier {
	return &Copier{Options: opts}
}

// Copy extracts and serializes the selection of src. The returned event
// always carries the data that would be copied; when copying is disabled or
// vetoed the event is cancel-marked and the payload is empty.
func (c *Copier) Copy(src Source) (string, model.CopyingMsg) {
	data := src.SelectedData(c.Options.CopyFormatters, c.Options.CopyHeaders)
	text, err := Encode(data, c.Options)
	if err != nil {
		cblog.With("component", "clipboard").Warn("Encoding failed, copying as text", "format", c.Options.Format, "error", err)
		text = Serialize(data, c.Options)
	}
	ev := &model.CopyingMsg{
		Data:   data,
		Text:   text,
		Cancel: !c.Options.Enabled,
	}
	if c.OnCopying != nil {
		c.OnCopying(ev)
	}
	if !c.Options.Enabled {
		ev.Cancel = true
	}
	if ev.Cancel {
		cblog.With("component", "clipboard").Debug("Copy cancelled", "rows", len(data), "enabled", c.Options.Enabled)
		return "", *ev
	}
	return ev.Text, *ev
}
