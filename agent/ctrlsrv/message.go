package ctrlsrv

import (
	"github.com/SyntropyNet/udp-probe/agent/common"
	"github.com/SyntropyNet/udp-probe/agent/udpclient"
)

const (
	cmdStart    = "START"
	cmdGetStats = "GET_STATS"
	// pushed without request when statistics change
	msgStats = "STATS"
)

type startResponse struct {
	common.MessageHeader
	Data struct {
		Started bool `json:"started"`
	} `json:"data"`
}

type statsMessage struct {
	common.MessageHeader
	Data udpclient.Snapshot `json:"data"`
}
