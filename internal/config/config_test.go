package config

import (
	"testing"
	"time"

	"github.com/SyntropyNet/udp-probe/internal/env"
	"github.com/SyntropyNet/udp-probe/internal/logger"
	"github.com/google/go-cmp/cmp"
)

var allVariables = []string{
	"UDPCLI_LOG_LEVEL",
	"UDPCLI_SEND_INT",
	"AUTO_START",
	"UDP_PAYLOAD_LEN",
	"UDPCLI_SERVER_ADDR",
	"UDPCLI_LOCAL_PORT",
	"UDPCLI_HOP_LIMIT",
	"UDPCLI_TOS",
	"UDPCLI_REPLY_TIMEOUT",
	"UDPCLI_EXPORTER_PORT",
	"UDPCLI_CONTROL_PORT",
}

func clearEnv(t *testing.T) {
	for _, name := range allVariables {
		// t.Setenv restores the previous value when the test ends
		t.Setenv(name, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	Init()

	if GetSendInterval() != 0 {
		t.Errorf("send interval must be zero when absent, got %s", GetSendInterval())
	}
	if !GetAutoStart() {
		t.Errorf("auto start must default to enabled")
	}
	if GetPayloadLength() != env.DefaultPayloadLength {
		t.Errorf("invalid default payload length %d", GetPayloadLength())
	}
	if GetServerAddr() != env.DefaultServerAddr {
		t.Errorf("invalid default server %s", GetServerAddr())
	}
	if GetLocalPort() != env.ClientPort {
		t.Errorf("invalid default local port %d", GetLocalPort())
	}
	if GetReplyTimeout() != 0 {
		t.Errorf("reply timeout must follow the (zero) interval, got %s", GetReplyTimeout())
	}
	if GetDebugLevel() != logger.InfoLevel {
		t.Errorf("invalid default log level %d", GetDebugLevel())
	}
	if diff := cmp.Diff(allVariables, AbsentVariables()); diff != "" {
		t.Errorf("absent variables mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	clearEnv(t)
	t.Setenv("UDPCLI_SEND_INT", "0.5")
	t.Setenv("AUTO_START", "0")
	t.Setenv("UDP_PAYLOAD_LEN", "100")
	t.Setenv("UDPCLI_SERVER_ADDR", "127.0.0.1:5678")
	t.Setenv("UDPCLI_LOCAL_PORT", "9000")
	t.Setenv("UDPCLI_HOP_LIMIT", "32")
	t.Setenv("UDPCLI_TOS", "184")
	t.Setenv("UDPCLI_EXPORTER_PORT", "9100")
	t.Setenv("UDPCLI_CONTROL_PORT", "70000")
	t.Setenv("UDPCLI_LOG_LEVEL", "debug")
	Init()

	if GetSendInterval() != 500*time.Millisecond {
		t.Errorf("invalid send interval %s", GetSendInterval())
	}
	if GetAutoStart() {
		t.Errorf("AUTO_START=0 must disable auto start")
	}
	if GetPayloadLength() != 100 {
		t.Errorf("invalid payload length %d", GetPayloadLength())
	}
	if GetServerAddr() != "127.0.0.1:5678" {
		t.Errorf("invalid server %s", GetServerAddr())
	}
	if GetLocalPort() != 9000 {
		t.Errorf("invalid local port %d", GetLocalPort())
	}
	if GetHopLimit() != 32 || GetTOS() != 184 {
		t.Errorf("invalid hop limit %d or tos %d", GetHopLimit(), GetTOS())
	}
	if GetReplyTimeout() != time.Second {
		t.Errorf("reply timeout must default to two intervals, got %s", GetReplyTimeout())
	}
	if GetExporterPort() != 9100 {
		t.Errorf("invalid exporter port %d", GetExporterPort())
	}
	if GetControlPort() != 0 {
		t.Errorf("out of range control port must be ignored, got %d", GetControlPort())
	}
	if GetDebugLevel() != logger.DebugLevel {
		t.Errorf("invalid log level %d", GetDebugLevel())
	}
}

func TestAutoStartValues(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"0", false},
		{"0.0", false},
		{"2.5", true},
		{"true", true},
		{"false", false},
		{"garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("AUTO_START", tt.value)
			Init()
			if GetAutoStart() != tt.want {
				t.Errorf("AUTO_START=%q: got %v, want %v", tt.value, GetAutoStart(), tt.want)
			}
		})
	}
}

func TestReplyTimeoutDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("UDPCLI_SEND_INT", "10")
	t.Setenv("UDPCLI_REPLY_TIMEOUT", "0")
	Init()

	if GetReplyTimeout() != 0 {
		t.Errorf("explicit zero must disable loss tracking, got %s", GetReplyTimeout())
	}
}

func TestSetServerAddr(t *testing.T) {
	clearEnv(t)
	Init()

	SetServerAddr("")
	if GetServerAddr() != env.DefaultServerAddr {
		t.Errorf("empty override must be ignored")
	}
	SetServerAddr("[::1]:5678")
	if GetServerAddr() != "[::1]:5678" {
		t.Errorf("override failed: %s", GetServerAddr())
	}
}
