package clients

import "context"

// --- Prosody (/track) ---
// The service runs the pitch tracker and RMS envelope over the audio and
// returns one value per frame; unvoiced frames come back as 0.
type ProsodyResp struct {
	Pitch     []float64 `json:"pitch"`
	Amplitude []float64 `json:"amplitude"`
	Duration  float64   `json:"duration"`
	FrameHop  float64   `json:"frame_hop"`
}

func (h *HTTP) Prosody(ctx context.Context, url, wavPath string) (*ProsodyResp, error) {
	var out ProsodyResp
	if err := h.postFile(ctx, "prosody", url+"/track", wavPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
