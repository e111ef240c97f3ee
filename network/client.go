// Package network provides pre-configured HTTP clients for talking to websites and icon providers.
package network

import (
	"net/http"
	"time"

	"github.com/favigo/favigo/key"
	"github.com/spf13/viper"
)

// Client is the default HTTP client, used when no configuration has been loaded.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// New builds a client from the network.* configuration keys.
func New() *http.Client {
	timeout := time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}

	var transport http.RoundTripper = newTransport()
	if viper.GetBool(key.NetworkTLSFingerprint) {
		transport = newFingerprintTransport(timeout)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
