package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteJSON writes a pretty-printed artifact with a trailing newline, the
// shape the web app serves as a static asset. Whole-file overwrite.
func WriteJSON(path string, v any) error {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	blob = append(blob, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}
