package scan

import (
	"context"
	"fmt"
	"net"
	"time"
)

// PingResult is the value produced by the reachability probe.
type PingResult struct {
	Address string
	Port    int
	Latency time.Duration
}

// PingProbe measures TCP connect latency to the target. ICMP needs raw
// sockets, so reachability is measured the way a browser would see it: a TCP
// handshake against 443, falling back to 80.
func PingProbe(timeout time.Duration) Probe {
	return Probe{
		Name:    "ping",
		Kind:    KindPort,
		Timeout: timeout,
		Run: func(ctx context.Context, target Target) (any, error) {
			dialer := &net.Dialer{}
			var lastErr error
			for _, port := range []int{443, 80} {
				start := time.Now()
				conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(target.Host(), fmt.Sprintf("%d", port)))
				if err != nil {
					lastErr = err
					continue
				}
				latency := time.Since(start)
				addr := conn.RemoteAddr().String()
				conn.Close()
				return &PingResult{Address: addr, Port: port, Latency: latency}, nil
			}
			return nil, lastErr
		},
	}
}
