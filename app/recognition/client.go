package recognition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"
)

// ErrEngineUnavailable is returned when the face engine cannot be reached
// or answers with a non-success status.
var ErrEngineUnavailable = errors.New("face engine unavailable")

// EngineClient talks to the external face-matching engine. Given a probe
// image and a gallery handle it returns the ranked candidate list; all
// detection and embedding work happens on the engine side.
type EngineClient struct {
	baseURL  string
	model    string
	detector string
	client   *http.Client
}

// NewEngineClient creates a client for the face engine at baseURL.
func NewEngineClient(baseURL, model, detector string) *EngineClient {
	return &EngineClient{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		model:    model,
		detector: detector,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Model returns the recognition model family the client is configured for.
func (c *EngineClient) Model() string {
	return c.model
}

type engineMatch struct {
	Identity string  `json:"identity"`
	Distance float64 `json:"distance"`
}

// Find submits a probe image and returns the engine's candidates. The
// identity labels are gallery paths; IdentityCode extracts the person code.
func (c *EngineClient) Find(filename string, image io.Reader, gallery string, metric Metric) ([]Candidate, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("img", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"db_path":          gallery,
		"model_name":       c.model,
		"detector_backend": c.detector,
		"distance_metric":  string(metric),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/recognize", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrEngineUnavailable, resp.StatusCode)
	}

	return normalizeMatches(body)
}

// normalizeMatches accepts the engine's response in any of its shapes — a
// bare list, a single object, or a {"matches": ...} wrapper — and returns
// one flat candidate list.
func normalizeMatches(body []byte) ([]Candidate, error) {
	raw := bytes.TrimSpace(body)

	var wrapper struct {
		Matches json.RawMessage `json:"matches"`
	}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("decoding engine response: %w", err)
		}
		if wrapper.Matches != nil {
			raw = bytes.TrimSpace(wrapper.Matches)
		}
	}

	var matches []engineMatch
	switch {
	case len(raw) == 0 || string(raw) == "null":
		// no faces found
	case raw[0] == '[':
		if err := json.Unmarshal(raw, &matches); err != nil {
			return nil, fmt.Errorf("decoding engine matches: %w", err)
		}
	case raw[0] == '{':
		var single engineMatch
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("decoding engine match: %w", err)
		}
		matches = append(matches, single)
	default:
		return nil, fmt.Errorf("unexpected engine response: %s", string(raw))
	}

	candidates := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, Candidate{Identity: m.Identity, Distance: m.Distance})
	}
	return candidates, nil
}

// IdentityCode extracts the person code from an engine identity label,
// which is a path into the gallery: <gallery>/<code>/<image file>.
func IdentityCode(identity string) string {
	return path.Base(path.Dir(strings.ReplaceAll(identity, "\\", "/")))
}
