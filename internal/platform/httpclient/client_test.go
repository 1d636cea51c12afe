// internal/platform/httpclient/client_test.go
package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DavidJovino/deivao-recon/internal/testutil"
)

func TestGetSetsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := New(Config{UserAgent: "test-agent/0.1"})
	resp, err := c.Get(context.Background(), srv.URL)
	testutil.AssertNoError(t, err, "get")
	resp.Body.Close()

	testutil.AssertEqual(t, gotUA, "test-agent/0.1", "user agent header")
}

func TestDefaultUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	c := New(Config{})
	resp, err := c.Get(context.Background(), srv.URL)
	testutil.AssertNoError(t, err, "get")
	resp.Body.Close()

	testutil.AssertEqual(t, gotUA, "deivao-recon/1.0", "default user agent")
}

func TestNoFollowRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusMovedPermanently)
	}))
	defer srv.Close()

	c := New(Config{FollowRedirects: false})
	resp, err := c.Get(context.Background(), srv.URL)
	testutil.AssertNoError(t, err, "get")
	defer resp.Body.Close()

	// La primera respuesta se entrega tal cual
	testutil.AssertEqual(t, resp.StatusCode, http.StatusMovedPermanently, "redirect not followed")
}

func TestFollowRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(Config{FollowRedirects: true})
	resp, err := c.Get(context.Background(), srv.URL)
	testutil.AssertNoError(t, err, "get")
	defer resp.Body.Close()

	testutil.AssertEqual(t, resp.StatusCode, http.StatusTeapot, "redirect followed to final")
}

func TestPostJSON(t *testing.T) {
	var gotCT string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	c := New(DefaultConfig())
	resp, err := c.PostJSON(context.Background(), srv.URL, map[string]int{"answer": 42})
	testutil.AssertNoError(t, err, "post")
	resp.Body.Close()

	testutil.AssertEqual(t, gotCT, "application/json", "content type")

	var payload map[string]int
	testutil.AssertNoError(t, json.Unmarshal(gotBody, &payload), "body decodes")
	testutil.AssertEqual(t, payload["answer"], 42, "payload round-trip")
}

func TestPostJSONUnserializable(t *testing.T) {
	c := New(DefaultConfig())
	_, err := c.PostJSON(context.Background(), "http://unused.invalid", map[string]interface{}{
		"bad": func() {},
	})
	testutil.AssertError(t, err, "unserializable payload fails before any request")
}
