package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dd0wney/cluso-diffusion/pkg/sim"
)

// WriteJSON writes the full run result, config and series included, as
// indented JSON.
func WriteJSON(w io.Writer, result *sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// WriteJSONFile writes the run result to a file.
func WriteJSONFile(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, result)
}
