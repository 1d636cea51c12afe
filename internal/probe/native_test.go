// internal/probe/native_test.go
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/DavidJovino/deivao-recon/internal/core/domain"
	"github.com/DavidJovino/deivao-recon/internal/testutil"
)

func mustTargetProbe(t *testing.T, raw string) domain.Target {
	t.Helper()
	target, err := domain.NewTarget(raw)
	testutil.AssertNoError(t, err, "target "+raw)
	return target
}

func TestNativeProbeActiveViaHTTPFallback(t *testing.T) {
	// Servidor HTTP plano: el intento https falla el handshake, el
	// fallback http confirma al host como activo
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "http://")
	prober := NewNativeProber(2, 3*time.Second, testutil.NewTestLogger())

	results, err := prober.Probe(context.Background(), mustTargetProbe(t, "example.com"), []string{host})
	testutil.AssertNoError(t, err, "probe")
	testutil.AssertLen(t, results, 1, "one result per host")

	r := results[0]
	testutil.AssertEqual(t, r.Status, domain.LivenessActive, "any HTTP response is active")
	testutil.AssertEqual(t, r.Scheme, "http", "confirmed over http fallback")
	testutil.AssertEqual(t, r.StatusCode, http.StatusServiceUnavailable, "status code recorded, not judged")
}

func TestNativeProbeRefusedIsInactive(t *testing.T) {
	// Puerto libre garantizado: escuchar y cerrar de inmediato
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	testutil.AssertNoError(t, err, "listen")
	host := ln.Addr().String()
	ln.Close()

	prober := NewNativeProber(2, 3*time.Second, testutil.NewTestLogger())

	results, err := prober.Probe(context.Background(), mustTargetProbe(t, "example.com"), []string{host})
	testutil.AssertNoError(t, err, "probe")
	testutil.AssertLen(t, results, 1, "one result")
	testutil.AssertEqual(t, results[0].Status, domain.LivenessInactive, "refused on both schemes is inactive")
	testutil.AssertTrue(t, results[0].Err != "", "failure reason kept")
}

func TestNativeProbeEmptyInput(t *testing.T) {
	prober := NewNativeProber(2, time.Second, testutil.NewTestLogger())

	results, err := prober.Probe(context.Background(), mustTargetProbe(t, "example.com"), nil)
	testutil.AssertNoError(t, err, "probe")
	testutil.AssertLen(t, results, 0, "no hosts, no results")
}

func TestNativeProbePreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	testutil.AssertNoError(t, err, "listen")
	dead := ln.Addr().String()
	ln.Close()

	live := strings.TrimPrefix(srv.URL, "http://")
	hosts := []string{dead, live, dead}

	prober := NewNativeProber(3, 3*time.Second, testutil.NewTestLogger())
	results, err := prober.Probe(context.Background(), mustTargetProbe(t, "example.com"), hosts)
	testutil.AssertNoError(t, err, "probe")
	testutil.AssertLen(t, results, 3, "one result per input host")

	for i, r := range results {
		testutil.AssertEqual(t, r.Subdomain, hosts[i], fmt.Sprintf("position %d preserved", i))
	}
	testutil.AssertEqual(t, results[1].Status, domain.LivenessActive, "live host active")
	testutil.AssertEqual(t, results[0].Status, domain.LivenessInactive, "dead host inactive")
}

type fakeTimeoutError struct{}

func (fakeTimeoutError) Error() string   { return "i/o timeout" }
func (fakeTimeoutError) Timeout() bool   { return true }
func (fakeTimeoutError) Temporary() bool { return false }

func TestClassifyProbeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.LivenessStatus
	}{
		{
			name: "dns not found",
			err:  &net.DNSError{Err: "no such host", Name: "x.example.com", IsNotFound: true},
			want: domain.LivenessInactive,
		},
		{
			name: "dns timeout",
			err:  &net.DNSError{Err: "timeout", Name: "x.example.com", IsTimeout: true},
			want: domain.LivenessUnknown,
		},
		{
			name: "connection refused",
			err:  fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED),
			want: domain.LivenessInactive,
		},
		{
			name: "host unreachable",
			err:  fmt.Errorf("dial tcp: %w", syscall.EHOSTUNREACH),
			want: domain.LivenessInactive,
		},
		{
			name: "network timeout",
			err:  fakeTimeoutError{},
			want: domain.LivenessUnknown,
		},
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: domain.LivenessUnknown,
		},
		{
			name: "cancelled",
			err:  context.Canceled,
			want: domain.LivenessUnknown,
		},
		{
			name: "tls garbage",
			err:  errors.New("tls: first record does not look like a TLS handshake"),
			want: domain.LivenessUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, classifyProbeError(tt.err), tt.want, tt.name)
		})
	}
}

func TestStrippedError(t *testing.T) {
	err := fmt.Errorf("Get \"https://x.example.com\": %w", syscall.ECONNREFUSED)
	got := strippedError(err)
	testutil.AssertFalse(t, strings.Contains(got, "https://"), "url prefix removed")
	testutil.AssertTrue(t, strings.Contains(got, "connection refused"), "cause kept")

	testutil.AssertEqual(t, strippedError(nil), "", "nil error empty")
	testutil.AssertEqual(t, strippedError(errors.New("plain")), "plain", "plain message untouched")
}
