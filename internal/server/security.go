package server

import (
	"crypto/tls"
	"fmt"
	"net"
)

const defaultNetwork = "tcp"

// TLSLayer serves connections over TLS 1.2 or newer.
type TLSLayer struct {
	config *tls.Config
}

// NewTLSLayer loads the key pair up front so a bad certificate fails at
// startup rather than on the first Listen.
func NewTLSLayer(certFileName, privateKeyFileName string) (*TLSLayer, error) {
	cert, err := tls.LoadX509KeyPair(certFileName, privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	return &TLSLayer{
		config: &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		},
	}, nil
}

func (l *TLSLayer) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := tls.Listen(network(protocol), addr, l.config.Clone())
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// PlainLayer serves unencrypted connections. Use it behind a TLS-terminating
// proxy or in development.
type PlainLayer struct{}

func NewPlainLayer() *PlainLayer {
	return &PlainLayer{}
}

func (l *PlainLayer) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := net.Listen(network(protocol), addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

func network(protocol string) string {
	if protocol == "" {
		return defaultNetwork
	}
	return protocol
}
