// Command entanglement-server boots the transport reactor and serves
// connections until SIGINT/SIGTERM, grounded on the teacher's
// cmd/test-server bootstrap-then-serve shape (generate keys/state, start
// listeners, block on signal) translated from its gRPC+HTTP control plane
// to this core's single TCP reactor plus a metrics HTTP endpoint.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/entanglement-project/entanglement-core/catalog"
	"github.com/entanglement-project/entanglement-core/config"
	"github.com/entanglement-project/entanglement-core/internal/obs"
	"github.com/entanglement-project/entanglement-core/registry"
	"github.com/entanglement-project/entanglement-core/session"
	"github.com/entanglement-project/entanglement-core/transport"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7443", "address to serve the secure transport on")
	metricsAddr := flag.String("metrics-addr", "127.0.0.1:9443", "address to serve Prometheus metrics on")
	kemFlag := flag.String("kem", string(catalog.KEMHybridX25519768), "KEM algorithm identifier to negotiate")
	flag.Parse()

	log, err := obs.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if _, err := config.Load(); err != nil {
		log.Warn("starting without a loaded environment configuration", zap.Error(err))
	}

	sessions := session.NewManager(session.DefaultConfig(), 5*time.Second)
	events := &metricsEvents{log: log}
	reactor := transport.New(sessions, registry.Global(), catalog.KEMType(*kemFlag), events, transport.DefaultConfig())

	go func() {
		log.Info("serving metrics", zap.String("addr", *metricsAddr))
		if err := obs.StartServer(*metricsAddr); err != nil {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()

	if err := reactor.Serve(*addr); err != nil {
		log.Error("failed to start reactor", zap.Error(err))
		os.Exit(1)
	}
	log.Info("serving secure transport", zap.String("addr", reactor.Addr().String()), zap.String("kem", *kemFlag))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	if err := reactor.Stop(); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
}

// metricsEvents is the reactor's production Events implementation: every
// lifecycle callback updates the corresponding obs metric and logs at a
// level matching its severity, never logging plaintext or key material.
type metricsEvents struct {
	transport.NoopEvents
	log *obs.Logger
}

func (e *metricsEvents) OnClientConnected(p *session.Participant) {
	obs.HandshakesStarted.WithLabelValues(string(p.Role())).Inc()
	e.log.Info("participant connected", zap.String("participant_id", p.ID()), zap.String("remote_addr", p.RemoteAddr()))
}

func (e *metricsEvents) OnHandshakeComplete(p *session.Participant) {
	obs.HandshakesCompleted.WithLabelValues("success").Inc()
	obs.ParticipantsActive.Inc()
	e.log.Info("handshake complete", zap.String("participant_id", p.ID()))
}

func (e *metricsEvents) OnDataReceived(p *session.Participant, plaintext []byte) {
	obs.DataRecords.WithLabelValues("received").Inc()
	e.log.Debug("data record received", zap.String("participant_id", p.ID()), zap.Int("bytes", len(plaintext)))
}

func (e *metricsEvents) OnParticipantClosed(p *session.Participant) {
	// Only participants that completed the handshake were counted; the
	// reactor sets the negotiated label at that point and Close keeps it.
	if p.SecurityContext().NegotiatedLabel() != "" {
		obs.ParticipantsActive.Dec()
	}
	e.log.Info("participant closed", zap.String("participant_id", p.ID()))
}

func (e *metricsEvents) OnServerError(p *session.Participant, err error) {
	obs.HandshakesCompleted.WithLabelValues("failure").Inc()
	if p != nil {
		e.log.Warn("server error", zap.String("participant_id", p.ID()), zap.Error(err))
		return
	}
	e.log.Warn("server error", zap.Error(err))
}
