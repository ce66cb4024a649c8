package config

import (
	"github.com/SyntropyNet/udp-probe/internal/env"
	"github.com/SyntropyNet/udp-probe/internal/logger"
)

const (
	maxPort = 65535
	maxTTL  = 255
)

func Init() {
	var tmpval uint
	var tmpstr string

	cache = configCache{}

	initString(&tmpstr, "UDPCLI_LOG_LEVEL", "")
	cache.debugLevel = logger.ParseLevel(tmpstr)

	// No send interval means the scheduler never leaves idle state
	initSeconds(&cache.sendInterval, "UDPCLI_SEND_INT", 0)
	initBool(&cache.autoStart, "AUTO_START", true)
	initUint(&cache.payloadLen, "UDP_PAYLOAD_LEN", env.DefaultPayloadLength)

	initString(&cache.serverAddr, "UDPCLI_SERVER_ADDR", env.DefaultServerAddr)
	initUint(&tmpval, "UDPCLI_LOCAL_PORT", env.ClientPort)
	if tmpval > 0 && tmpval <= maxPort {
		cache.localPort = uint16(tmpval)
	} else {
		cache.localPort = env.ClientPort
	}

	initUint(&tmpval, "UDPCLI_HOP_LIMIT", 0)
	if tmpval <= maxTTL {
		cache.hopLimit = int(tmpval)
	}
	initUint(&tmpval, "UDPCLI_TOS", 0)
	if tmpval <= maxTTL {
		cache.tos = int(tmpval)
	}

	// A reply older than two periods will never be matched
	initSeconds(&cache.replyTimeout, "UDPCLI_REPLY_TIMEOUT", 2*cache.sendInterval)

	initUint(&tmpval, "UDPCLI_EXPORTER_PORT", 0)
	if tmpval <= maxPort {
		cache.exporterPort = uint16(tmpval)
	}
	initUint(&tmpval, "UDPCLI_CONTROL_PORT", 0)
	if tmpval <= maxPort {
		cache.controlPort = uint16(tmpval)
	}
}

func Close() {
	// Anything needed to be closed or destroyed at the end of program, goes here
}

// Dump logs effective configuration and the variables that fell back to defaults.
// Call it after the global logger is set up.
func Dump() {
	for _, name := range cache.absent {
		logger.Debug().Println(pkgName, name, "env var not found, using default")
	}
	if cache.sendInterval <= 0 {
		logger.Info().Println(pkgName, "send interval not configured, probes will not be scheduled")
	}
	logger.Info().Println(pkgName, "interval:", cache.sendInterval, "auto start:", cache.autoStart,
		"payload:", cache.payloadLen, "server:", cache.serverAddr, "local port:", cache.localPort)
}
