package termowifi

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"go.bug.st/serial"
)

// Link is a byte stream to the hub. Reads must honor deadlines so the
// supervisor's watchdog can detect a silently dead link.
type Link interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
}

// Dialer opens a Link to the hub. Dial must return within the
// supervisor's connect timeout once ctx is cancelled.
type Dialer interface {
	Dial(ctx context.Context) (Link, error)

	// Address describes the remote end for logging.
	Address() string
}

// TCPDialer reaches the hub over its LAN service port. Keepalive probes
// are tuned aggressively: the hub keeps sockets open while its radio
// side wedges, and only the probes expose that.
type TCPDialer struct {
	Host string
	Port int
}

func (d *TCPDialer) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

func (d *TCPDialer) Dial(ctx context.Context) (Link, error) {
	nd := net.Dialer{
		KeepAliveConfig: net.KeepAliveConfig{
			Enable:   true,
			Idle:     60 * time.Second,
			Interval: 10 * time.Second,
			Count:    3,
		},
	}
	conn, err := nd.DialContext(ctx, "tcp", d.Address())
	if err != nil {
		return nil, fmt.Errorf("dial hub %s: %w", d.Address(), err)
	}
	return conn, nil
}

// SerialDialer attaches to a hub wired through its RS-232 service port,
// used on bench installs where the hub never joins a LAN.
type SerialDialer struct {
	Device   string
	BaudRate int
}

func (d *SerialDialer) Address() string {
	return d.Device
}

func (d *SerialDialer) Dial(ctx context.Context) (Link, error) {
	baud := d.BaudRate
	if baud == 0 {
		baud = 9600
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(d.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial device %s: %w", d.Device, err)
	}
	return &serialLink{port: port}, nil
}

// serialLink maps the Link deadline contract onto the port's read
// timeout. An expired timeout surfaces as os.ErrDeadlineExceeded so the
// watchdog path is the same for both transports.
type serialLink struct {
	port serial.Port
}

func (l *serialLink) Read(p []byte) (int, error) {
	n, err := l.port.Read(p)
	if err == nil && n == 0 {
		return 0, os.ErrDeadlineExceeded
	}
	return n, err
}

func (l *serialLink) Write(p []byte) (int, error) {
	return l.port.Write(p)
}

func (l *serialLink) Close() error {
	return l.port.Close()
}

func (l *serialLink) SetReadDeadline(t time.Time) error {
	if t.IsZero() {
		return l.port.SetReadTimeout(serial.NoTimeout)
	}
	return l.port.SetReadTimeout(time.Until(t))
}
