package scan

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"
)

// DefaultPorts are the services worth knowing about on a public host.
var DefaultPorts = []int{21, 22, 25, 80, 110, 143, 443, 587, 3306, 8080}

var serviceNames = map[int]string{
	21:   "ftp",
	22:   "ssh",
	23:   "telnet",
	25:   "smtp",
	80:   "http",
	110:  "pop3",
	143:  "imap",
	443:  "https",
	587:  "submission",
	3306: "mysql",
	5432: "postgresql",
	6379: "redis",
	8080: "http-alt",
	8443: "https-alt",
}

// PortStatus is the value produced by a single port probe.
type PortStatus struct {
	Port    int
	Service string
	Open    bool
	Banner  string
}

// PortProbes builds one probe per port so each connect attempt is
// independently timeout-bounded and reported. A refused connection is a
// definitive answer (closed), not a failure.
func PortProbes(ports []int, timeout time.Duration) []Probe {
	if len(ports) == 0 {
		ports = DefaultPorts
	}
	probes := make([]Probe, 0, len(ports))
	for _, port := range ports {
		port := port
		probes = append(probes, Probe{
			Name:    fmt.Sprintf("port %d", port),
			Kind:    KindPort,
			Timeout: timeout,
			Run: func(ctx context.Context, target Target) (any, error) {
				return checkPort(ctx, target.Host(), port)
			},
		})
	}
	return probes
}

func checkPort(ctx context.Context, host string, port int) (*PortStatus, error) {
	status := &PortStatus{Port: port, Service: serviceName(port)}

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return status, nil
		}
		return nil, err
	}
	defer conn.Close()

	status.Open = true

	// Banner grab on a short leash; plenty of services stay silent.
	_ = conn.SetReadDeadline(time.Now().Add(800 * time.Millisecond))
	buf := make([]byte, 256)
	if n, err := conn.Read(buf); err == nil && n > 0 {
		status.Banner = strings.TrimSpace(string(buf[:n]))
	}
	return status, nil
}

func serviceName(port int) string {
	if name, ok := serviceNames[port]; ok {
		return name
	}
	return "unknown"
}
