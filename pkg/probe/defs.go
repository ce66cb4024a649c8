// Package probe implements probe packet wire format and reply statistics.
package probe

import "errors"

const (
	// Largest datagram the client is willing to build
	MaxPacketSize = 1024
	// sequence (4) + seconds (8) + microseconds (8)
	HeaderSize = 20

	seqOffset  = 0
	secOffset  = 4
	usecOffset = 12
)

var (
	ErrBufferTooSmall = errors.New("payload does not fit into probe buffer")
	ErrShortPacket    = errors.New("packet shorter than probe header")
)

// MaxPayloadLength is the largest payload Encode accepts
func MaxPayloadLength() uint {
	return MaxPacketSize - HeaderSize
}
