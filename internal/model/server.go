package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a Server accepts on, plain or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a long-running listener owned by main: the gRPC API or the
// ops HTTP endpoint. Start blocks until Stop is called.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
