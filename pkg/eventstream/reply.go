package eventstream

import (
	"bufio"
	"bytes"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

var ErrNoReply = errors.New("no decodable event in stream")

// Reply is the latest state of the assistant turn carried by the stream.
type Reply struct {
	MessageID      string
	ConversationID string
	Text           string
}

// Final scans an event-stream body and returns the last complete event before [DONE].
// Lines that are not data events, or whose payload does not decode, are skipped.
func Final(body []byte) (Reply, error) {
	var (
		reply Reply
		found bool
	)

	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			break
		}
		if !gjson.Valid(payload) {
			continue
		}

		parsed := gjson.Parse(payload)
		part := parsed.Get("message.content.parts.0")
		if !part.Exists() {
			continue
		}

		reply = Reply{
			MessageID:      parsed.Get("message.id").String(),
			ConversationID: parsed.Get("conversation_id").String(),
			Text:           part.String(),
		}
		found = true
	}
	if err := sc.Err(); err != nil {
		return Reply{}, err
	}

	if !found {
		return Reply{}, ErrNoReply
	}
	return reply, nil
}
