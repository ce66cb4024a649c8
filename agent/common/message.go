package common

import (
	"time"

	"github.com/SyntropyNet/udp-probe/internal/env"
)

// Generic message struct (common part for all messages)
type MessageHeader struct {
	ID        string `json:"id"`
	MsgType   string `json:"type"`
	Timestamp string `json:"executed_at,omitempty"`
}

func (mh *MessageHeader) Now() {
	mh.Timestamp = time.Now().Format(env.TimeFormat)
}

type ErrorResponse struct {
	MessageHeader
	Data struct {
		Type    string `json:"type"`
		Message string `json:"error"`
	} `json:"data"`
}

// NewErrorResponse answers request id of msgType with an error
func NewErrorResponse(id, msgType string, err error) *ErrorResponse {
	resp := ErrorResponse{}
	resp.ID = id
	resp.MsgType = "ERROR"
	resp.Data.Type = msgType
	resp.Data.Message = err.Error()
	resp.Now()
	return &resp
}
