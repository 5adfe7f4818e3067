package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

// ErrMalformed is returned when the model reply holds no usable JSON object.
var ErrMalformed = errors.New("malformed model output")

const systemPrompt = `You are an assistant specialized in disaster response.
Extract the following information from the user's report:
1. disaster_type: one of earthquake, flood, fire, hurricane, tornado, tsunami, or unknown
2. location: the place name (city, neighborhood, region)
3. severity: an object of numeric facts if mentioned, e.g. {"magnitude": "6.2"}
4. details: any other critical details as a short string
Respond with a single JSON object with exactly the keys disaster_type, location, severity, details.`

// Model is the model-assisted extraction strategy.
type Model struct {
	gen     domain.TextGenerator
	timeout time.Duration
}

// NewModel creates a model-assisted extractor bounded by timeout per call.
func NewModel(gen domain.TextGenerator, timeout time.Duration) *Model {
	return &Model{gen: gen, timeout: timeout}
}

// modelFacts mirrors the JSON object the model is asked to return. Severity
// and Details are kept raw because models do not reliably honor the types.
type modelFacts struct {
	DisasterType *string         `json:"disaster_type"`
	Location     string          `json:"location"`
	Severity     json.RawMessage `json:"severity"`
	Details      json.RawMessage `json:"details"`
}

// Extract asks the text generator for the report's facts. Any generator
// error, timeout, or unparseable reply is returned as an error.
func (m *Model) Extract(ctx context.Context, report string) (domain.DisasterEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	reply, err := m.gen.Generate(ctx, systemPrompt, report)
	if err != nil {
		return domain.DisasterEvent{}, fmt.Errorf("generate: %w", err)
	}
	return parseReply(reply)
}

func parseReply(reply string) (domain.DisasterEvent, error) {
	raw, ok := firstObject(reply)
	if !ok {
		return domain.DisasterEvent{}, ErrMalformed
	}

	var facts modelFacts
	if err := json.Unmarshal(raw, &facts); err != nil {
		return domain.DisasterEvent{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if facts.DisasterType == nil {
		return domain.DisasterEvent{}, fmt.Errorf("%w: missing disaster_type", ErrMalformed)
	}

	location := strings.TrimSpace(facts.Location)
	if location == "" {
		location = domain.UnknownLocation
	}

	return domain.DisasterEvent{
		Type:         domain.ParseDisasterType(*facts.DisasterType),
		LocationName: location,
		Severity:     normalizeSeverity(facts.Severity),
		Details:      scalarText(facts.Details),
	}, nil
}

// normalizeSeverity flattens an object to string values and wraps a scalar
// under "description". Null or absent severity yields an empty map.
func normalizeSeverity(raw json.RawMessage) map[string]string {
	out := map[string]string{}
	if len(raw) == 0 {
		return out
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for k, v := range obj {
			if text := scalarText(v); text != "" {
				out[strings.ToLower(k)] = text
			}
		}
		return out
	}

	if text := scalarText(raw); text != "" {
		out["description"] = text
	}
	return out
}

// scalarText renders a JSON value as plain text: strings unquoted, null as
// empty, anything else compacted.
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return ""
	}
	return buf.String()
}
