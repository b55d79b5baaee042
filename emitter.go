package emitter

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Emitter sends a timestamped sample record of a constant position to
// the configured destination at a fixed interval.
type Emitter struct {
	config   *Config
	position Position

	logger *logger
	clock  Clock
	sender *packetSender

	sent      atomic.Uint64
	closeOnce sync.Once
	closeErr  error
}

// NewEmitter is used to create a new emitter from configuration,
// if cfg is nil, DefaultConfig is used.
func NewEmitter(cfg *Config, pos Position) (*Emitter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	err := cfg.Check()
	if err != nil {
		return nil, err
	}
	// initialize logger
	var ok bool
	lg, err := newLogger(cfg.LogPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log file")
	}
	defer func() {
		if !ok {
			_ = lg.Close()
		}
	}()
	conn, addr, err := listenPacket(cfg)
	if err != nil {
		return nil, err
	}
	ok = true
	return newEmitter(cfg, pos, lg, conn, addr), nil
}

func newEmitter(cfg *Config, pos Position, lg *logger, conn net.PacketConn, addr net.Addr) *Emitter {
	timeout := time.Duration(cfg.Transport.SendTimeout)
	return &Emitter{
		config:   cfg,
		position: pos,
		logger:   lg,
		clock:    realClock{},
		sender:   newPacketSender(conn, addr, timeout),
	}
}

// Run encodes and sends records until ctx is done, it returns nil
// after ctx is done. If fail fast is enabled, the first send error
// stops the loop and is returned, otherwise it is logged.
func (em *Emitter) Run(ctx context.Context) error {
	interval := time.Duration(em.config.Schedule.Interval)
	em.logger.Infof("send position (%g, %g, %g) to %s every %s",
		em.position.X, em.position.Y, em.position.Z, em.sender.addr, interval,
	)
	buf := make([]byte, 0, RecordSize)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		rec := NewRecord(em.clock.Now(), em.position)
		err := em.sender.Send(rec.AppendBinary(buf[:0]))
		if err != nil {
			if em.config.Schedule.FailFast {
				err = errors.WithMessage(err, "failed to send record")
				em.logger.Fatal(err)
				return err
			}
			em.logger.Warning("failed to send record:", err)
		} else {
			em.sent.Add(1)
		}
		select {
		case <-em.clock.After(interval):
		case <-ctx.Done():
			return nil
		}
	}
}

// Sent returns the number of records that were written to the socket.
func (em *Emitter) Sent() uint64 {
	return em.sent.Load()
}

// Close is used to close the socket and the log file.
func (em *Emitter) Close() error {
	em.closeOnce.Do(func() {
		em.logger.Infof("emitter stopped, %d records sent", em.Sent())
		err := em.sender.Close()
		e := em.logger.Close()
		if e != nil && err == nil {
			err = e
		}
		em.closeErr = err
	})
	return em.closeErr
}
