// Package langdetect is the NATS request-reply client for the external
// language-detection service. Detection is a heuristic owned by that service;
// this package only ships text over and validates what comes back.
package langdetect

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	nc "github.com/nats-io/nats.go"

	sharedtypes "github.com/hablemos-club/league-bot/app/shared/types/shared"
)

// DetectSubjectV1 is the request-reply subject served by the detector.
const DetectSubjectV1 = "league.detect.language.v1"

// defaultTimeout bounds a detection round trip when the caller's context has
// no deadline of its own.
const defaultTimeout = 2 * time.Second

// Detector resolves the language of a piece of text. An empty code means the
// language could not be determined.
type Detector interface {
	Detect(ctx context.Context, text string) (sharedtypes.LanguageCode, error)
}

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Language string `json:"language"`
}

// Client implements Detector over a raw NATS connection.
type Client struct {
	conn    *nc.Conn
	subject string
	logger  *slog.Logger
}

// NewClient creates a detector client on the given connection.
func NewClient(conn *nc.Conn, logger *slog.Logger) *Client {
	return &Client{
		conn:    conn,
		subject: DetectSubjectV1,
		logger:  logger,
	}
}

// Detect asks the detection service for the language of text.
func (c *Client) Detect(ctx context.Context, text string) (sharedtypes.LanguageCode, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	payload, err := json.Marshal(detectRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal detect request: %w", err)
	}

	msg, err := c.conn.RequestWithContext(ctx, c.subject, payload)
	if err != nil {
		return "", fmt.Errorf("failed to request language detection: %w", err)
	}

	var resp detectResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal detect response: %w", err)
	}

	switch code := sharedtypes.LanguageCode(resp.Language); code {
	case sharedtypes.LangSpanish, sharedtypes.LangEnglish:
		return code, nil
	default:
		// Anything else counts as undetermined.
		return "", nil
	}
}

var _ Detector = (*Client)(nil)
