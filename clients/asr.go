package clients

import (
	"context"
	"strings"
)

type TransSeg struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
type ASRResp struct {
	Segments []TransSeg `json:"segments"`
	Text     string     `json:"text"`
	Language string     `json:"language"`
}

// FullText is the transcript text, rebuilt from the segments when the
// service did not send it.
func (r *ASRResp) FullText() string {
	if r.Text != "" {
		return r.Text
	}
	parts := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func (h *HTTP) ASR(ctx context.Context, url, wavPath string) (*ASRResp, error) {
	var out ASRResp
	if err := h.postFile(ctx, "asr", url+"/transcribe", wavPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
