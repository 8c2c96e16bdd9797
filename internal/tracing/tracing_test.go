package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInit_EmptyOutputIsNoop(t *testing.T) {
	shutdown, err := Init("svc", "v", "")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetStatusFromHTTPCode(t *testing.T) {
	cases := map[int]codes.Code{
		200: codes.Ok,
		404: codes.Unset,
		503: codes.Error,
	}
	for code, want := range cases {
		rec := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

		_, span := tp.Tracer("test").Start(context.Background(), "req")
		SetStatusFromHTTPCode(span, code)
		span.End()

		ended := rec.Ended()
		if len(ended) != 1 {
			t.Fatalf("expected 1 span, got %d", len(ended))
		}
		if got := ended[0].Status().Code; got != want {
			t.Fatalf("code %d: status %v want %v", code, got, want)
		}
	}
}

type fakeCloser struct {
	closed int
	err    error
}

func (f *fakeCloser) Close() error {
	f.closed++
	return f.err
}

func TestCloseAfter_ClosesOutput(t *testing.T) {
	c := &fakeCloser{}
	var shutdownCalled bool
	shutdown := closeAfter(func(context.Context) error {
		shutdownCalled = true
		return nil
	}, c)

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !shutdownCalled || c.closed != 1 {
		t.Fatalf("shutdownCalled=%v closed=%d", shutdownCalled, c.closed)
	}
}

func TestCloseAfter_PrefersShutdownError(t *testing.T) {
	shutdownErr := errors.New("flush failed")
	c := &fakeCloser{err: errors.New("close failed")}
	shutdown := closeAfter(func(context.Context) error { return shutdownErr }, c)

	if err := shutdown(context.Background()); !errors.Is(err, shutdownErr) {
		t.Fatalf("expected shutdown error, got %v", err)
	}
	if c.closed != 1 {
		t.Fatalf("expected output closed even on shutdown error, closed=%d", c.closed)
	}
}

func TestCloseAfter_ReportsCloseError(t *testing.T) {
	closeErr := errors.New("close failed")
	shutdown := closeAfter(func(context.Context) error { return nil }, &fakeCloser{err: closeErr})

	if err := shutdown(context.Background()); !errors.Is(err, closeErr) {
		t.Fatalf("expected close error, got %v", err)
	}
}
