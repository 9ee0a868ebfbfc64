package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	sederr "github.com/sedstack/sedinit/internal/errors"
)

// BufSize is the longest value the store hands back. Longer values are
// truncated, matching the fixed buffers the model input format was designed
// around.
const BufSize = 255

// DateLayout is how TOML datetime values are rendered before the schedule
// parser sees them. Rendered values are always UTC.
const DateLayout = time.RFC3339Nano

// Store resolves (section, key) pairs to raw string values.
//
// GetString returns def when the key is absent. An absent key with an empty
// default is an error: required keys never fall back silently.
type Store interface {
	GetString(section, key, def string) (string, error)
}

// Input is a Store backed by a sectioned model input file.
//
// Sections are TOML tables and keys are quoted TOML keys, so names like
// "MASS WASTING" survive unchanged. Section and key matching ignores case and
// surrounding whitespace.
type Input struct {
	path     string
	sections map[string]map[string]string
}

// NewInput builds an Input from already-split values. Used by tests and by
// callers that assemble input programmatically.
func NewInput(sections map[string]map[string]string) *Input {
	in := &Input{sections: make(map[string]map[string]string, len(sections))}
	for sec, kv := range sections {
		dst := in.section(sec, true)
		for k, v := range kv {
			dst[normalize(k)] = v
		}
	}
	return in
}

// LoadInput reads and parses a model input file.
func LoadInput(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sederr.IOFileNotFound(path)
		}
		return nil, sederr.IOReadError(path, err)
	}
	return parseInput(path, string(data))
}

// ParseInput parses model input from TOML text.
func ParseInput(data string) (*Input, error) {
	return parseInput("", data)
}

func parseInput(path, data string) (*Input, error) {
	var raw map[string]any
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, sederr.ParseError(path, err)
	}

	in := &Input{path: path, sections: make(map[string]map[string]string, len(raw))}
	for sec, body := range raw {
		table, ok := body.(map[string]any)
		if !ok {
			// Top-level keys belong to no section and are never looked up.
			continue
		}
		dst := in.section(sec, true)
		for key, v := range table {
			s, err := render(v)
			if err != nil {
				return nil, sederr.MalformedValue(sec, key, fmt.Sprint(v), "a scalar value").WithCause(err)
			}
			dst[normalize(key)] = s
		}
	}
	return in, nil
}

// Path returns the file the input was loaded from, if any.
func (in *Input) Path() string {
	return in.path
}

// Lookup returns the raw value and whether the key was present.
func (in *Input) Lookup(section, key string) (string, bool) {
	sec := in.section(section, false)
	if sec == nil {
		return "", false
	}
	v, ok := sec[normalize(key)]
	if !ok {
		return "", false
	}
	if len(v) > BufSize {
		v = v[:BufSize]
	}
	return v, true
}

// GetString implements Store.
func (in *Input) GetString(section, key, def string) (string, error) {
	if v, ok := in.Lookup(section, key); ok {
		return v, nil
	}
	if def == "" {
		return "", sederr.MissingValue(section, key)
	}
	return def, nil
}

// Sections returns the normalized section names in sorted order.
func (in *Input) Sections() []string {
	names := make([]string, 0, len(in.sections))
	for name := range in.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (in *Input) section(name string, create bool) map[string]string {
	name = normalize(name)
	sec, ok := in.sections[name]
	if !ok && create {
		sec = make(map[string]string)
		in.sections[name] = sec
	}
	return sec
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// render turns a decoded TOML scalar into the string form the typed parsers
// expect.
func render(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		if x {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case time.Time:
		return renderTime(x), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// renderTime converts a decoded TOML datetime to UTC. Offset datetimes keep
// their instant. Local datetimes and dates carry no offset, so their wall
// clock is taken as UTC like every other model timestamp.
func renderTime(t time.Time) string {
	if strings.HasSuffix(t.Location().String(), "-local") {
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	return t.UTC().Format(DateLayout)
}
