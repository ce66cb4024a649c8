package config

import "time"

const pkgName = "UdpProbeConfig. "

// This struct is used to cache probe client configuration.
// All of it comes from exported shell variables, read once at startup.
// Cache them and use from here
type configCache struct {
	sendInterval time.Duration
	autoStart    bool
	payloadLen   uint

	serverAddr string
	localPort  uint16
	hopLimit   int
	tos        int

	replyTimeout time.Duration

	exporterPort uint16
	controlPort  uint16

	debugLevel int

	// names of environment variables which were not set and fell back to defaults
	absent []string
}

var cache configCache
