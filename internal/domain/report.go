package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RawReport is a disaster report message read from a stream, with its source
// position and an optional commit callback.
type RawReport struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Headers   map[string]string
	Commit    func(context.Context) error
}

// Report is the JSON payload carried by a RawReport.
type Report struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ErrEmptyReport is returned when a report carries no message text.
var ErrEmptyReport = errors.New("report message is empty")

// ParseRawReport decodes a RawReport's value. The message key is used as the
// report ID when the payload does not carry one.
func ParseRawReport(raw RawReport) (Report, error) {
	var r Report
	if err := json.Unmarshal(raw.Value, &r); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	if strings.TrimSpace(r.Message) == "" {
		return Report{}, ErrEmptyReport
	}
	if r.ID == "" {
		r.ID = string(raw.Key)
	}
	return r, nil
}
