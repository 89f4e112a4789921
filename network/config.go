package network

import "time"

// Config defines configuration for the gossip transport.
type Config struct {
	// ListenAddrs are the multiaddrs the host binds to.
	ListenAddrs []string `json:"listen_addrs"`
	// ServiceTag is the mDNS service name used for local discovery.
	ServiceTag string `json:"service_tag"`
	// PeerTTL is how long a discovered peer stays registered without being
	// re-announced before it is reported as expired.
	PeerTTL time.Duration `json:"peer_ttl"`
	// Heartbeat is the gossipsub heartbeat interval.
	Heartbeat time.Duration `json:"heartbeat"`
	// ConnLow and ConnHigh are the connection manager watermarks.
	ConnLow  int `json:"conn_low"`
	ConnHigh int `json:"conn_high"`
}

// DefaultConfig returns a configuration with sensible defaults: one
// stream-oriented and one encrypted datagram-oriented listener, both on
// OS-assigned ports on all interfaces.
func DefaultConfig() Config {
	return Config{
		ListenAddrs: []string{
			"/ip4/0.0.0.0/tcp/0",
			"/ip4/0.0.0.0/udp/0/quic-v1",
		},
		ServiceTag: "t-chain",
		PeerTTL:    2 * time.Minute,
		Heartbeat:  10 * time.Second,
		ConnLow:    16,
		ConnHigh:   64,
	}
}
