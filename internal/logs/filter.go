package logs

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ripconsole/internal/logging"
)

// Filter selects log lines. Zero values match everything.
type Filter struct {
	JobID     int64
	BatchID   string
	Component string
}

func (f Filter) empty() bool {
	return f.JobID == 0 && f.BatchID == "" && f.Component == ""
}

// Match reports whether line satisfies every populated field of f.
func (f Filter) Match(line string) bool {
	if f.empty() {
		return true
	}
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(trimmed), &entry); err == nil {
			return f.matchJSON(entry)
		}
	}
	return f.matchConsole(line)
}

func (f Filter) matchJSON(entry map[string]any) bool {
	if f.JobID != 0 && fieldString(entry[logging.FieldJobID]) != strconv.FormatInt(f.JobID, 10) {
		return false
	}
	if f.BatchID != "" && fieldString(entry["batch_id"]) != f.BatchID {
		return false
	}
	if f.Component != "" && fieldString(entry[logging.FieldComponent]) != f.Component {
		return false
	}
	return true
}

func (f Filter) matchConsole(line string) bool {
	if f.JobID != 0 && !strings.Contains(line, " Job #"+strconv.FormatInt(f.JobID, 10)+" ") {
		return false
	}
	if f.BatchID != "" && !strings.Contains(line, "batch_id="+f.BatchID) {
		return false
	}
	if f.Component != "" && !strings.Contains(line, " ["+f.Component+"]") {
		return false
	}
	return true
}

func fieldString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
