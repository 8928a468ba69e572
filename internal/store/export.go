package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/poitune/internal/config"
)

// ExportData is the JSON document written by ExportJSON.
type ExportData struct {
	Scenario string        `json:"scenario,omitempty"`
	Revision uint64        `json:"revision"`
	Params   config.Params `json:"params"`
}

func (s *Store) export() ExportData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ExportData{Scenario: s.scenario, Revision: s.rev, Params: s.params}
}

func (s *Store) ExportJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s.export())
}

func (s *Store) ExportJSONFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.ExportJSON(file)
}

// ImportJSON replaces the parameters with an exported document.
func (s *Store) ImportJSON(r io.Reader) error {
	var data ExportData
	data.Params = *config.DefaultParams()
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return err
	}
	data.Params.Sanitize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = data.Params
	s.scenario = data.Scenario
	s.rev++
	return nil
}
