package logger

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/SyntropyNet/udp-probe/internal/env"
)

const msgType = "LOGGER"

type logMessage struct {
	ID        string `json:"id"`
	MsgType   string `json:"type"`
	Timestamp string `json:"executed_at,omitempty"`
	Data      struct {
		Level   string `json:"severity"`
		Message string `json:"message"`
	} `json:"data"`
}

// MessageWriter wraps a writer and emits every log line as a LOGGER json message.
// Pass it to New or SetupGlobalLoger together with plain writers.
type MessageWriter struct {
	wr    io.Writer
	level string
}

func NewMessageWriter(w io.Writer) *MessageWriter {
	return &MessageWriter{wr: w}
}

func (l *MessageWriter) Write(b []byte) (n int, err error) {
	msg := logMessage{
		ID:        env.MessageDefaultID,
		MsgType:   msgType,
		Timestamp: time.Now().Format(env.TimeFormat),
	}

	msg.Data.Message = strings.TrimRight(string(b), "\n")
	msg.Data.Level = l.level
	raw, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}

	_, err = l.wr.Write(raw)
	if err != nil {
		return 0, err
	}
	// log.Logger expects the full line to be consumed
	return len(b), nil
}
