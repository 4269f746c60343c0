package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func mkSessionDir(outputsRoot, sessionID string) (string, error) {
	if err := validSessionID(sessionID); err != nil {
		return "", err
	}
	dir := filepath.Join(outputsRoot, sessionID)
	if rel, err := filepath.Rel(outputsRoot, dir); err != nil || rel != sessionID {
		return "", fmt.Errorf("%w: %q leaves %s", ErrInvalidSessionID, sessionID, outputsRoot)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// persist writes report.json and report.yaml under outputsRoot/<session id>.
func persist(outputsRoot string, r *Report) (dir string, err error) {
	dir, err = mkSessionDir(outputsRoot, r.SessionID)
	if err != nil {
		return "", err
	}
	if err = writeJSON(filepath.Join(dir, "report.json"), r); err != nil {
		return "", err
	}
	if err = writeYAML(filepath.Join(dir, "report.yaml"), r); err != nil {
		return "", err
	}
	return dir, nil
}
