package orchestrator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/speech-quality/analysis"
)

// ErrInvalidSessionID rejects ids that cannot name a single directory under
// the outputs root.
var ErrInvalidSessionID = errors.New("invalid session id")

var sessionExts = map[string]bool{".json": true, ".yaml": true, ".yml": true}

func loadSession(path string) (*Session, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Session
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(b, &s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &s)
	default:
		return nil, fmt.Errorf("session %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", path, err)
	}
	if s.ID == "" {
		s.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := validSessionID(s.ID); err != nil {
		return nil, fmt.Errorf("session %s: %w", path, err)
	}
	if s.Audio != "" && !filepath.IsAbs(s.Audio) {
		s.Audio = filepath.Join(filepath.Dir(path), s.Audio)
	}
	s.path = path
	return &s, nil
}

func validSessionID(id string) error {
	switch {
	case id == "", id == ".", id == "..",
		strings.ContainsAny(id, `/\`+"\x00"),
		filepath.Base(id) != id,
		filepath.VolumeName(id) != "":
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	return nil
}

// input fills the word count and duration from the transcript when the
// session file leaves them out.
func (s *Session) input() analysis.Input {
	in := s.Input
	if in.Words == 0 && in.Text != "" {
		in.Words = analysis.CountWords(in.Text)
	}
	if in.DurationSeconds == 0 {
		for _, seg := range in.Segments {
			in.DurationSeconds = math.Max(in.DurationSeconds, seg.End)
		}
	}
	return in
}

// SessionFiles expands directories into the session files they contain.
// Plain file arguments are kept as given.
func SessionFiles(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		fi, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			out = append(out, a)
			continue
		}
		entries, err := os.ReadDir(a)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || !sessionExts[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			found = append(found, filepath.Join(a, e.Name()))
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
