package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// JSONFormatter renders an Entry as a single line of JSON.
type JSONFormatter struct {
	TimeFormat string // defaults to RFC 3339 with fixed nine-digit nanoseconds
}

func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	timeFormat := f.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02T15:04:05.000000000Z07:00"
	}
	out := make(map[string]interface{}, len(entry.Fields)+4)
	for k, v := range entry.Fields {
		out[k] = v
	}
	out["level"] = entry.Level.String()
	out["msg"] = entry.Message
	out["ts"] = entry.Timestamp.Format(timeFormat)
	if entry.Error != nil {
		out["error"] = entry.Error.Error()
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("log: marshal entry: %w", err)
	}
	return append(buf, '\n'), nil
}

// TextFormatter renders an Entry as a compact human-readable line, in the
// style of "level=info ts=... msg=... key=value ...".
type TextFormatter struct {
	TimeFormat string
}

func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	timeFormat := f.TimeFormat
	if timeFormat == "" {
		timeFormat = "15:04:05.000"
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "level=%s ts=%s msg=%q", entry.Level.String(), entry.Timestamp.Format(timeFormat), entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, " %s=%v", k, entry.Fields[k])
	}
	if entry.Error != nil {
		fmt.Fprintf(&buf, " error=%q", entry.Error.Error())
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
