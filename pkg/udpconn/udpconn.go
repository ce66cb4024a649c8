// Package udpconn is a connected UDP socket towards a single probe peer.
package udpconn

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"syscall"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
	"golang.org/x/sys/unix"
)

const maxDatagramSize = 2048

var ErrConnectionUnavailable = errors.New("no UDP connection available")

type Options struct {
	// Peer address in host:port form
	Server string
	// Local port to bind, 0 lets the OS choose
	LocalPort uint16
	// IPv4 TTL or IPv6 hop limit. 0 keeps OS default.
	HopLimit int
	// IPv4 TOS or IPv6 traffic class. 0 keeps OS default.
	TOS int
}

type Conn struct {
	conn      *net.UDPConn
	remote    *net.UDPAddr
	closeOnce sync.Once
}

func reuseAddr(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}

// Dial binds local port and connects the socket to the peer.
// Any failure is reported as ErrConnectionUnavailable.
func Dial(ctx context.Context, opts Options) (*Conn, error) {
	remote, err := net.ResolveUDPAddr("udp", opts.Server)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %s: %v", ErrConnectionUnavailable, opts.Server, err)
	}

	dialer := net.Dialer{
		LocalAddr: &net.UDPAddr{Port: int(opts.LocalPort)},
		Control:   reuseAddr,
	}
	c, err := dialer.DialContext(ctx, "udp", remote.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionUnavailable, err)
	}

	conn := &Conn{
		conn:   c.(*net.UDPConn),
		remote: remote,
	}

	err = conn.setOptions(opts)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnectionUnavailable, err)
	}

	return conn, nil
}

func (c *Conn) setOptions(opts Options) error {
	if c.remote.IP.To4() != nil {
		ipConn := ipv4.NewConn(c.conn)
		if opts.HopLimit > 0 {
			if err := ipConn.SetTTL(opts.HopLimit); err != nil {
				return err
			}
		}
		if opts.TOS > 0 {
			if err := ipConn.SetTOS(opts.TOS); err != nil {
				return err
			}
		}
		return nil
	}

	ipConn := ipv6.NewConn(c.conn)
	if opts.HopLimit > 0 {
		if err := ipConn.SetHopLimit(opts.HopLimit); err != nil {
			return err
		}
	}
	if opts.TOS > 0 {
		if err := ipConn.SetTrafficClass(opts.TOS); err != nil {
			return err
		}
	}
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.remote
}

// Send writes a single datagram to the peer
func (c *Conn) Send(b []byte) error {
	_, err := c.conn.Write(b)
	return err
}

// ReadLoop calls fn with a private copy of every received datagram.
// Returns nil when ctx is done or the connection was closed.
func (c *Conn) ReadLoop(ctx context.Context, fn func([]byte)) error {
	go func() {
		<-ctx.Done()
		c.Close()
	}()

	buf := make([]byte, maxDatagramSize)
	for {
		n, err := c.conn.Read(buf)
		switch {
		case err == nil:
			fn(append([]byte{}, buf[:n]...))
		case ctx.Err() != nil, errors.Is(err, net.ErrClosed):
			return nil
		case errors.Is(err, unix.ECONNREFUSED):
			// ICMP port unreachable from the peer, keep listening.
			continue
		default:
			return err
		}
	}
}

func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}
