package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/SyntropyNet/udp-probe/agent/common"
	"github.com/SyntropyNet/udp-probe/agent/ctrlsrv"
	"github.com/SyntropyNet/udp-probe/agent/exporter"
	"github.com/SyntropyNet/udp-probe/agent/udpclient"
	"github.com/SyntropyNet/udp-probe/internal/config"
	"github.com/SyntropyNet/udp-probe/internal/env"
	"github.com/SyntropyNet/udp-probe/internal/logger"
	"github.com/SyntropyNet/udp-probe/pkg/reflector"
	"github.com/SyntropyNet/udp-probe/pkg/udpconn"
	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"
)

const fullAppName = "UDP Probe Client. "

func terminateSignal() <-chan os.Signal {
	// SIGINT or SIGTERM terminates app
	terminate := make(chan os.Signal, 1)
	signal.Notify(terminate, os.Interrupt, syscall.SIGTERM)
	return terminate
}

func runReflector(ctx context.Context) int {
	addr := net.JoinHostPort("::", strconv.Itoa(env.ServerPort))
	r, err := reflector.New(addr)
	if err != nil {
		logger.Error().Println(fullAppName, "reflector:", err)
		return -int(unix.EADDRNOTAVAIL)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- r.Serve(ctx) }()

	select {
	case <-terminateSignal():
		logger.Info().Println(fullAppName, "terminating. Reflected", r.Reflected(), "probes")
		return 0
	case err := <-errCh:
		logger.Error().Println(fullAppName, "reflector:", err)
		return -int(unix.EIO)
	}
}

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	execName := os.Args[0]

	showVersionAndExit := pflag.BoolP("version", "v", false, "Show version and exit")
	peer := pflag.String("peer", "", "Peer address host:port (overrides UDPCLI_SERVER_ADDR)")
	reflect := pflag.Bool("reflect", false, fmt.Sprintf("Run as probe reflector on port %d", env.ServerPort))
	pflag.Parse()

	if *showVersionAndExit {
		fmt.Printf("%s (%s):\t%s\n\n", fullAppName, execName, config.GetFullVersion())
		return
	}

	config.Init()
	defer config.Close()
	config.SetServerAddr(*peer)

	var ctrl *ctrlsrv.Server
	writers := []io.Writer{os.Stderr}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *reflect {
		logger.SetupGlobalLoger(config.GetDebugLevel(), writers...)
		logger.Info().Println(fullAppName, execName, config.GetFullVersion(), "started.")
		exitCode = runReflector(ctx)
		return
	}

	session := udpclient.New(udpclient.Config{
		Period:        config.GetSendInterval(),
		AutoStart:     config.GetAutoStart(),
		PayloadLength: config.GetPayloadLength(),
		ReplyTimeout:  config.GetReplyTimeout(),
		Conn: udpconn.Options{
			Server:    config.GetServerAddr(),
			LocalPort: config.GetLocalPort(),
			HopLimit:  config.GetHopLimit(),
			TOS:       config.GetTOS(),
		},
	})

	// control clients receive log lines too
	if port := config.GetControlPort(); port > 0 {
		ctrl = ctrlsrv.New(port, session)
		writers = append(writers, logger.NewMessageWriter(ctrl))
	}
	logger.SetupGlobalLoger(config.GetDebugLevel(), writers...)
	config.Dump()

	logger.Info().Println(fullAppName, execName, config.GetFullVersion(), "started.")

	services := []common.Service{session}
	if port := config.GetExporterPort(); port > 0 {
		m, err := exporter.New(port, exporter.NewCollector(config.GetServerAddr(), session))
		if err != nil {
			logger.Error().Println(fullAppName, "exporter:", err)
			exitCode = -int(unix.EINVAL)
			return
		}
		services = append(services, m)
	}
	if ctrl != nil {
		services = append(services, ctrl)
	}

	for _, s := range services {
		err := s.Run(ctx)
		if err != nil {
			logger.Error().Println(fullAppName, s.Name(), "failed:", err)
			if errors.Is(err, udpconn.ErrConnectionUnavailable) {
				exitCode = -int(unix.EADDRNOTAVAIL)
			} else {
				exitCode = -int(unix.EIO)
			}
			return
		}
		logger.Debug().Println(fullAppName, s.Name(), "started")
	}

	<-terminateSignal()
	logger.Info().Println(fullAppName, "terminating")
}
