package network

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/favigo/favigo/key"
	utls "github.com/refraction-networking/utls"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestNew(t *testing.T) {
	Convey("Given network configuration", t, func() {
		defer viper.Set(key.NetworkTLSFingerprint, false)

		Convey("The timeout is taken from config", func() {
			viper.Set(key.NetworkTimeout, 7)
			So(New().Timeout, ShouldEqual, 7*time.Second)
		})

		Convey("A non-positive timeout falls back to a minute", func() {
			viper.Set(key.NetworkTimeout, 0)
			So(New().Timeout, ShouldEqual, time.Minute)
		})

		Convey("The fingerprint transport is opt-in", func() {
			viper.Set(key.NetworkTLSFingerprint, false)
			_, ok := New().Transport.(*http.Transport)
			So(ok, ShouldBeTrue)

			viper.Set(key.NetworkTLSFingerprint, true)
			_, ok = New().Transport.(*fingerprintTransport)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestFingerprintTransport(t *testing.T) {
	Convey("Given the fingerprint transport", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "plain")
		}))
		defer srv.Close()

		client := &http.Client{Transport: newFingerprintTransport(5 * time.Second)}

		Convey("Plain http requests bypass uTLS", func() {
			resp, err := client.Get(srv.URL)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			So(string(body), ShouldEqual, "plain")
		})
	})
}

func alpnOf(t *testing.T, nextProtos []string) []string {
	spec, err := chromeHello(nextProtos)
	if err != nil {
		t.Fatal(err)
	}
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*utls.ALPNExtension); ok {
			return alpn.AlpnProtocols
		}
	}
	return nil
}

func TestChromeHello(t *testing.T) {
	Convey("Given the Chrome client hello", t, func() {
		Convey("It offers h2 and http/1.1 by default", func() {
			So(alpnOf(t, nil), ShouldResemble, []string{"h2", "http/1.1"})
		})

		Convey("The HTTP/1.1 fallback offers only http/1.1", func() {
			So(alpnOf(t, []string{"http/1.1"}), ShouldResemble, []string{"http/1.1"})
		})
	})
}
