package probe

import (
	"encoding/binary"
	"time"
)

// Packet is a single probe as seen on the wire
type Packet struct {
	Sequence uint32
	SendTime Timestamp
	Payload  []byte
}

// Encode builds a probe datagram: header followed by payloadLen zero bytes.
// Nothing is built when the result would exceed MaxPacketSize.
func Encode(seq uint32, payloadLen uint, now time.Time) ([]byte, error) {
	if payloadLen > MaxPayloadLength() {
		return nil, ErrBufferTooSmall
	}

	buf := make([]byte, HeaderSize+int(payloadLen))
	ts := NewTimestamp(now)
	binary.BigEndian.PutUint32(buf[seqOffset:], seq)
	binary.BigEndian.PutUint64(buf[secOffset:], uint64(ts.Seconds))
	binary.BigEndian.PutUint64(buf[usecOffset:], uint64(ts.Microseconds))

	return buf, nil
}

// Decode parses probe header. Payload is copied, but not validated.
func Decode(b []byte) (Packet, error) {
	if len(b) < HeaderSize {
		return Packet{}, ErrShortPacket
	}

	pkt := Packet{
		Sequence: binary.BigEndian.Uint32(b[seqOffset:]),
		SendTime: Timestamp{
			Seconds:      int64(binary.BigEndian.Uint64(b[secOffset:])),
			Microseconds: int64(binary.BigEndian.Uint64(b[usecOffset:])),
		},
	}
	if len(b) > HeaderSize {
		pkt.Payload = append([]byte{}, b[HeaderSize:]...)
	}

	return pkt, nil
}
