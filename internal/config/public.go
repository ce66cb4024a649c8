package config

import "time"

func GetDebugLevel() int {
	return cache.debugLevel
}

// GetSendInterval returns base probe period. Zero means not configured.
func GetSendInterval() time.Duration {
	return cache.sendInterval
}

func GetAutoStart() bool {
	return cache.autoStart
}

func GetPayloadLength() uint {
	return cache.payloadLen
}

func GetServerAddr() string {
	return cache.serverAddr
}

// SetServerAddr overrides the peer address (used by command line flags)
func SetServerAddr(addr string) {
	if addr != "" {
		cache.serverAddr = addr
	}
}

func GetLocalPort() uint16 {
	return cache.localPort
}

func GetHopLimit() int {
	return cache.hopLimit
}

func GetTOS() int {
	return cache.tos
}

// GetReplyTimeout returns how long a probe waits for its reply before it is counted lost.
// Zero disables loss tracking.
func GetReplyTimeout() time.Duration {
	return cache.replyTimeout
}

func GetExporterPort() uint16 {
	return cache.exporterPort
}

func GetControlPort() uint16 {
	return cache.controlPort
}

// AbsentVariables lists the environment variables that were not set at Init
func AbsentVariables() []string {
	return append([]string{}, cache.absent...)
}
