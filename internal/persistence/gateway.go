// Package persistence reads and writes the calendar state file.
//
// The file is a JSON object with two maps keyed by YYYY-MM-DD:
//
//	{ "notes": { "2024-03-15": "text" },
//	  "assignments": { "2024-03-15": [["100", "Acme"]] } }
//
// Loading never fails. A missing or malformed file yields an empty state
// and entries that cannot be understood are dropped one by one.
package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjrosen/printcal/internal/calendar"
	"github.com/zjrosen/printcal/internal/log"
)

// Gateway is the state file at Path.
type Gateway struct {
	Path string
}

// NewGateway creates a gateway for path.
func NewGateway(path string) *Gateway {
	return &Gateway{Path: path}
}

type fileState struct {
	Notes       map[string]string     `json:"notes"`
	Assignments map[string][][]string `json:"assignments"`
}

// Load reads the state file. Errors are logged, never returned.
func (g *Gateway) Load() calendar.State {
	f, err := os.Open(g.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn(log.CatPersist, "state file unreadable", "path", g.Path, "error", err)
		}
		return calendar.NewState()
	}
	defer func() { _ = f.Close() }()

	st, err := Decode(f)
	if err != nil {
		log.Warn(log.CatPersist, "state file malformed", "path", g.Path, "error", err)
		return calendar.NewState()
	}
	log.Info(log.CatPersist, "state loaded", "path", g.Path,
		"notes", len(st.Notes), "days", len(st.Assignments))
	return st
}

// Save writes state atomically, creating the parent directory.
func (g *Gateway) Save(state calendar.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(g.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".state.json.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, g.Path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Encode renders state in the file format, keys in date order.
func Encode(state calendar.State) ([]byte, error) {
	st := state.Normalize()
	out := fileState{
		Notes:       make(map[string]string, len(st.Notes)),
		Assignments: make(map[string][][]string, len(st.Assignments)),
	}
	for day, text := range st.Notes {
		out.Notes[day.String()] = text
	}
	for day, list := range st.Assignments {
		rows := make([][]string, len(list))
		for i, a := range list {
			rows[i] = []string{a.OrderNumber, a.Company}
		}
		out.Assignments[day.String()] = rows
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return buf.Bytes(), nil
}

// ErrTrailingData is returned by Decode when anything but whitespace follows
// the top-level value.
var ErrTrailingData = errors.New("decoding state: trailing data after JSON value")

// Decode parses the file format. It fails when the input is not exactly one
// JSON value; unknown shapes inside are skipped.
func Decode(r io.Reader) (calendar.State, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return calendar.NewState(), fmt.Errorf("decoding state: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return calendar.NewState(), ErrTrailingData
	}

	st := calendar.NewState()
	top, ok := raw.(map[string]any)
	if !ok {
		return st, nil
	}

	if notes, ok := top["notes"].(map[string]any); ok {
		for key, value := range notes {
			day, err := calendar.ParseDateKey(key)
			text, isString := value.(string)
			if err != nil || !isString {
				continue
			}
			st.Notes[day] = text
		}
	}

	if assignments, ok := top["assignments"].(map[string]any); ok {
		for key, value := range assignments {
			day, err := calendar.ParseDateKey(key)
			entries, isList := value.([]any)
			if err != nil || !isList {
				continue
			}
			var list []calendar.Assignment
			for _, entry := range entries {
				switch e := entry.(type) {
				case []any:
					var fields []string
					for _, v := range e {
						fields = append(fields, stringify(v))
					}
					list = append(list, calendar.NewAssignment(fields...))
				case string:
					list = append(list, calendar.NewAssignment(e))
				}
			}
			if len(list) > 0 {
				st.Assignments[day] = list
			}
		}
	}

	return st.Normalize(), nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "True"
		}
		return "False"
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(b))
	}
}
