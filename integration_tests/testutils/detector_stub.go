//go:build integration

package testutils

import (
	"encoding/json"
	"strings"
	"testing"

	natsgo "github.com/nats-io/nats.go"

	"github.com/hablemos-club/league-bot/app/modules/activity/infrastructure/langdetect"
)

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Language string `json:"language"`
}

// StartDetectorStub subscribes a request-reply responder on the detection
// subject. Classification is keyword based and matches the sentences the data
// generator produces; anything else comes back undetermined.
func StartDetectorStub(t *testing.T, conn *natsgo.Conn) {
	t.Helper()

	sub, err := conn.Subscribe(langdetect.DetectSubjectV1, func(msg *natsgo.Msg) {
		var req detectRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			_ = msg.Respond([]byte(`{"language":""}`))
			return
		}

		resp := detectResponse{Language: classify(req.Text)}
		data, _ := json.Marshal(resp)
		_ = msg.Respond(data)
	})
	if err != nil {
		t.Fatalf("failed to start detector stub: %v", err)
	}
	t.Cleanup(func() {
		_ = sub.Unsubscribe()
	})
}

func classify(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "hola") || strings.Contains(lower, "hoy"):
		return "es"
	case strings.Contains(lower, "hello") || strings.Contains(lower, "today"):
		return "en"
	}
	return ""
}
