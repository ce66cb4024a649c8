// Env package describes all settings, common to whole application
package env

import "time"

const (
	// Control messages carry ISO8601 timestamps.
	// RFC3339 is a stricter version of ISO8601, so it is safe to use here.
	TimeFormat = time.RFC3339
	// Default value for client initiated messages (no request ID to answer)
	MessageDefaultID = "-"

	// Local UDP port probes are sent from
	ClientPort = 8765
	// Remote UDP port the peer listens on
	ServerPort = 5678
	// Default peer: the RPL border router of the default fd00::/64 prefix
	DefaultServerAddr = "[fd00::ff:fe00:1]:5678"

	// Default probe payload length (bytes after the header)
	DefaultPayloadLength = 32

	// How often the control server pushes changed statistics
	StatsPushInterval = 5 * time.Second
)
