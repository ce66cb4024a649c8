// Package reflector echoes probe datagrams back to their sender.
// It plays the server side of a probe session.
package reflector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/SyntropyNet/udp-probe/internal/logger"
)

const (
	pkgName         = "Reflector. "
	maxDatagramSize = 2048
)

type Reflector struct {
	conn      *net.UDPConn
	reflected uint64
}

// New binds listen address in host:port form
func New(address string) (*Reflector, error) {
	laddr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return nil, err
	}

	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, err
	}

	return &Reflector{conn: conn}, nil
}

func (r *Reflector) LocalAddr() net.Addr {
	return r.conn.LocalAddr()
}

// Reflected returns count of echoed datagrams
func (r *Reflector) Reflected() uint64 {
	return atomic.LoadUint64(&r.reflected)
}

// Serve echoes datagrams until ctx is done. Connection is closed on return.
func (r *Reflector) Serve(ctx context.Context) error {
	defer r.conn.Close()

	go func() {
		<-ctx.Done()
		r.conn.Close()
	}()

	logger.Info().Println(pkgName, "Reflecting probes on", r.conn.LocalAddr())
	buf := make([]byte, maxDatagramSize)
	for {
		n, addr, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				logger.Info().Println(pkgName, "Finished reflecting on", r.conn.LocalAddr())
				return nil
			}
			return fmt.Errorf("receiving probe: %w", err)
		}

		_, err = r.conn.WriteToUDP(buf[:n], addr)
		if err != nil {
			logger.Warning().Println(pkgName, "sending reply to", addr, err)
			continue
		}
		atomic.AddUint64(&r.reflected, 1)
	}
}
