// Package network provides pre-configured HTTP clients for talking to websites and icon providers.
//
// fingerprintTransport dials https hosts with a uTLS Chrome ClientHello.
// Some CDNs and bot shields reject the Go TLS fingerprint outright and serve a
// challenge page instead of the favicon. HTTP/2 is tried first and HTTP/1.1
// is used when the h2 round trip fails. Plain http requests use a regular
// transport.
package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

type fingerprintTransport struct {
	h2    *http2.Transport
	h1    *http.Transport
	plain http.RoundTripper
}

func newFingerprintTransport(timeout time.Duration) *fingerprintTransport {
	dialer := &net.Dialer{Timeout: timeout}

	return &fingerprintTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, dialer, network, addr, nil)
			},
		},
		h1: &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialTLS(ctx, dialer, network, addr, []string{"http/1.1"})
			},
			ResponseHeaderTimeout: timeout,
		},
		plain: newTransport(),
	}
}

func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.plain.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	// Only bodiless requests can be replayed.
	if req.Body != nil && req.Body != http.NoBody {
		return nil, err
	}
	return t.h1.RoundTrip(req.Clone(req.Context()))
}

// dialTLS opens a TLS connection mimicking Chrome 120. A nil nextProtos keeps
// Chrome's own ALPN list (h2, http/1.1).
func dialTLS(ctx context.Context, dialer *net.Dialer, network, addr string, nextProtos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	spec, err := chromeHello(nextProtos)
	if err != nil {
		return nil, err
	}

	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}, utls.HelloCustom)

	if err := tlsConn.ApplyPreset(spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls preset: %w", err)
	}

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}

// chromeHello returns the Chrome 120 ClientHello. The preset carries its own
// ALPN extension, which wins over Config.NextProtos, so the protocol list is
// rewritten in the spec itself.
func chromeHello(nextProtos []string) (*utls.ClientHelloSpec, error) {
	spec, err := utls.UTLSIdToSpec(utls.HelloChrome_120)
	if err != nil {
		return nil, fmt.Errorf("chrome client hello: %w", err)
	}

	if nextProtos != nil {
		for _, ext := range spec.Extensions {
			if alpn, ok := ext.(*utls.ALPNExtension); ok {
				alpn.AlpnProtocols = nextProtos
			}
		}
	}

	return &spec, nil
}
