// Package ctrlsrv exposes probe session control over a websocket.
package ctrlsrv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/SyntropyNet/udp-probe/agent/common"
	"github.com/SyntropyNet/udp-probe/agent/udpclient"
	"github.com/SyntropyNet/udp-probe/internal/env"
	"github.com/SyntropyNet/udp-probe/internal/logger"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
)

const (
	pkgName = "ControlServer. "
	cmd     = "CONTROL"

	writeTimeout = 5 * time.Second
)

var ErrUnknownCommand = errors.New("unknown command")

// Controller is the probe session as seen by remote callers
type Controller interface {
	Snapshot() udpclient.Snapshot
	Start() bool
}

type client struct {
	// gorilla/websocket supports one concurrent writer only
	sync.Mutex
	ws *websocket.Conn
}

func (c *client) write(b []byte) error {
	c.Lock()
	defer c.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

type Server struct {
	sync.Mutex
	port     uint16
	ctrl     Controller
	upgrader websocket.Upgrader
	clients  map[*client]struct{}
	last     udpclient.Snapshot
}

func New(port uint16, ctrl Controller) *Server {
	return &Server{
		port:    port,
		ctrl:    ctrl,
		clients: make(map[*client]struct{}),
	}
}

func (s *Server) Name() string {
	return cmd
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	srv := http.Server{
		Addr:        fmt.Sprintf(":%d", s.port),
		Handler:     s.Handler(),
		ReadTimeout: 5 * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != http.ErrServerClosed {
			logger.Error().Println(pkgName, err)
		}
	}()

	go func() {
		ticker := time.NewTicker(env.StatsPushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Debug().Println(pkgName, "stopping", cmd)
				srv.Close()
				s.closeClients()
				return
			case <-ticker.C:
				s.pushStats()
			}
		}
	}()

	logger.Info().Println(pkgName, "control websocket listening on port", s.port)
	return nil
}

// Write broadcasts a raw message to every connected client.
// Used as a log sink, so it must never log itself.
func (s *Server) Write(b []byte) (int, error) {
	s.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.Unlock()

	for _, c := range clients {
		if err := c.write(b); err != nil {
			s.remove(c)
		}
	}
	return len(b), nil
}

func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warning().Println(pkgName, "upgrade:", err)
		return
	}

	c := &client{ws: ws}
	s.Lock()
	s.clients[c] = struct{}{}
	s.Unlock()
	logger.Debug().Println(pkgName, "client connected", r.RemoteAddr)

	defer s.remove(c)
	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}

		resp := s.process(raw)
		if err := c.write(resp); err != nil {
			return
		}
	}
}

func (s *Server) remove(c *client) {
	s.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.Unlock()

	if ok {
		c.ws.Close()
	}
}

func (s *Server) closeClients() {
	s.Lock()
	clients := s.clients
	s.clients = make(map[*client]struct{})
	s.Unlock()

	for c := range clients {
		c.Lock()
		c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.Unlock()
		c.ws.Close()
	}
}

// process executes a single request and returns encoded response
func (s *Server) process(raw []byte) []byte {
	var req common.MessageHeader
	var resp interface{}

	err := json.Unmarshal(raw, &req)
	if err != nil {
		resp = common.NewErrorResponse(env.MessageDefaultID, "", err)
	} else {
		switch req.MsgType {
		case cmdStart:
			r := startResponse{}
			r.ID = req.ID
			r.MsgType = req.MsgType
			r.Data.Started = s.ctrl.Start()
			r.Now()
			resp = &r
		case cmdGetStats:
			r := statsMessage{Data: s.ctrl.Snapshot()}
			r.ID = req.ID
			r.MsgType = req.MsgType
			r.Now()
			resp = &r
		default:
			resp = common.NewErrorResponse(req.ID, req.MsgType, ErrUnknownCommand)
		}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		// all response types are plain structs, this should never happen
		logger.Error().Println(pkgName, "marshal response:", err)
		return nil
	}
	return b
}

// pushStats broadcasts statistics if they changed since previous push
func (s *Server) pushStats() {
	snap := s.ctrl.Snapshot()

	s.Lock()
	changed := !cmp.Equal(snap, s.last)
	s.last = snap
	s.Unlock()
	if !changed {
		return
	}

	msg := statsMessage{Data: snap}
	msg.ID = env.MessageDefaultID
	msg.MsgType = msgStats
	msg.Now()
	b, err := json.Marshal(&msg)
	if err != nil {
		return
	}
	s.Write(b)
}
