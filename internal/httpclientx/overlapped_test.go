package httpclientx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/google/go-cmp/cmp"
	"github.com/ooni/onionoo/internal/model"
)

// Implementation note: because GetRaw always uses an [*Overlapped], we do not
// necessarily need to test single endpoints here; rather, we should focus on
// the mechanics of multiple URLs.

func TestNewOverlappedGetRawIsPerformingOverlappedCalls(t *testing.T) {

	// Scenario:
	//
	// - mirror 0 returns 503
	// - mirror 1 returns 503
	// - mirror 2 WAIs

	failing := func() *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
	}

	zero := failing()
	defer zero.Close()

	one := failing()
	defer one.Close()

	expectedResponse := []byte(`{"version":"8.0"}`)

	two := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(expectedResponse)
	}))
	defer two.Close()

	overlapped := NewOverlappedGetRaw(&Config{
		Client:    http.DefaultClient,
		Logger:    log.Log,
		UserAgent: model.HTTPHeaderUserAgent,
	})

	// make sure the test does not take too much time to complete
	overlapped.ScheduleInterval = 250 * time.Millisecond

	rawresp, idx, err := overlapped.Run(
		context.Background(),
		NewEndpoints(zero.URL, one.URL, two.URL)...,
	)

	if err != nil {
		t.Fatal(err)
	}

	if idx != 2 {
		t.Fatal("unexpected index", idx)
	}

	if diff := cmp.Diff(expectedResponse, rawresp); diff != "" {
		t.Fatal(diff)
	}
}

func TestNewOverlappedGetRawFirstSuccessWins(t *testing.T) {

	// Scenario:
	//
	// - mirror 0 WAIs immediately
	// - mirror 1 is broken but the first success wins

	expectedResponse := []byte(`{"version":"8.0"}`)

	zero := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(expectedResponse)
	}))
	defer zero.Close()

	one := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer one.Close()

	overlapped := NewOverlappedGetRaw(&Config{
		Client:    http.DefaultClient,
		Logger:    model.DiscardLogger,
		UserAgent: model.HTTPHeaderUserAgent,
	})

	// use a large interval such that the second call never starts
	overlapped.ScheduleInterval = time.Hour

	rawresp, idx, err := overlapped.Run(context.Background(), NewEndpoints(zero.URL, one.URL)...)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 0 {
		t.Fatal("unexpected index", idx)
	}
	if diff := cmp.Diff(expectedResponse, rawresp); diff != "" {
		t.Fatal(diff)
	}
}

func TestNewOverlappedGetRawWithAllFailures(t *testing.T) {
	newServer := func(code int) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
	}

	zero := newServer(http.StatusBadRequest)
	defer zero.Close()

	one := newServer(http.StatusInternalServerError)
	defer one.Close()

	overlapped := NewOverlappedGetRaw(&Config{
		Client:    http.DefaultClient,
		Logger:    model.DiscardLogger,
		UserAgent: model.HTTPHeaderUserAgent,
	})
	overlapped.ScheduleInterval = 50 * time.Millisecond

	rawresp, idx, err := overlapped.Run(context.Background(), NewEndpoints(zero.URL, one.URL)...)

	var failure *ErrRequestFailed
	if !errors.As(err, &failure) {
		t.Fatal("unexpected error", err)
	}
	if idx != -1 {
		t.Fatal("unexpected index", idx)
	}
	if rawresp != nil {
		t.Fatal("expected nil response")
	}
}

func TestOverlappedWithNoEndpoints(t *testing.T) {
	overlapped := NewOverlappedGetRaw(&Config{
		Client:    http.DefaultClient,
		Logger:    model.DiscardLogger,
		UserAgent: model.HTTPHeaderUserAgent,
	})

	rawresp, idx, err := overlapped.Run(context.Background())
	if !errors.Is(err, ErrGenericOverlappedFailure) {
		t.Fatal("unexpected error", err)
	}
	if idx != -1 {
		t.Fatal("unexpected index", idx)
	}
	if rawresp != nil {
		t.Fatal("expected nil response")
	}
}

func TestOverlappedWithCanceledContext(t *testing.T) {
	overlapped := NewOverlappedWithFunc(func(ctx context.Context, epnt *Endpoint) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := overlapped.Run(ctx, NewEndpoint("https://onionoo.torproject.org/"))
	if !errors.Is(err, context.Canceled) {
		t.Fatal("unexpected error", err)
	}
}
