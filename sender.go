package emitter

import (
	"net"
	"time"

	"github.com/pkg/errors"
)

// packetSender writes datagrams to the fixed destination through an
// unconnected socket, an ICMP port unreachable caused by a previous
// datagram is never reported on the next write.
type packetSender struct {
	conn    net.PacketConn
	addr    net.Addr
	timeout time.Duration
}

func listenPacket(cfg *Config) (net.PacketConn, net.Addr, error) {
	tr := cfg.Transport
	lAddr, err := net.ResolveUDPAddr(tr.Network, tr.LocalAddress)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to resolve local address")
	}
	rAddr, err := net.ResolveUDPAddr(tr.Network, tr.RemoteAddress)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to resolve remote address")
	}
	conn, err := net.ListenUDP(tr.Network, lAddr)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open udp socket")
	}
	return conn, rAddr, nil
}

func newPacketSender(conn net.PacketConn, addr net.Addr, timeout time.Duration) *packetSender {
	return &packetSender{
		conn:    conn,
		addr:    addr,
		timeout: timeout,
	}
}

// Send writes b as one datagram, it fails with a timeout error if the
// socket does not accept it before the send timeout. The deadline
// is always based on the system clock.
func (s *packetSender) Send(b []byte) error {
	err := s.conn.SetWriteDeadline(time.Now().Add(s.timeout))
	if err != nil {
		return errors.Wrap(err, "failed to set write deadline")
	}
	n, err := s.conn.WriteTo(b, s.addr)
	if err != nil {
		return errors.WithStack(err)
	}
	if n != len(b) {
		return errors.Errorf("short write: %d/%d bytes", n, len(b))
	}
	return nil
}

func (s *packetSender) Close() error {
	return s.conn.Close()
}
