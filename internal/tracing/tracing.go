// Package tracing wires OpenTelemetry for the server. Spans are exported
// with the stdout exporter to standard output or a file; any other
// sdktrace.SpanExporter can be installed with InitWithExporter.
package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/openclintech/go-triage-server"

var (
	providerOnce sync.Once
	provider     *sdktrace.TracerProvider
	providerErr  error
)

// Init installs a global provider exporting to output: "stdout" or a file
// path. An empty output leaves the no-op provider in place. The first
// successful call wins.
func Init(serviceName, serviceVersion, output string) (func(context.Context) error, error) {
	if output == "" {
		return func(context.Context) error { return nil }, nil
	}

	var w io.Writer = os.Stdout
	var out io.Closer
	if output != "stdout" {
		f, err := os.Create(output)
		if err != nil {
			return nil, err
		}
		w, out = f, f
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		closeQuietly(out)
		return nil, err
	}
	shutdown, err := InitWithExporter(serviceName, serviceVersion, exporter)
	if err != nil {
		closeQuietly(out)
		return nil, err
	}
	return closeAfter(shutdown, out), nil
}

// closeAfter runs shutdown, then closes c when it is non-nil. The close
// error is reported only if shutdown succeeded.
func closeAfter(shutdown func(context.Context) error, c io.Closer) func(context.Context) error {
	if c == nil {
		return shutdown
	}
	return func(ctx context.Context) error {
		err := shutdown(ctx)
		if cerr := c.Close(); err == nil {
			err = cerr
		}
		return err
	}
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (func(context.Context) error, error) {
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("service.version", serviceVersion),
			),
		)
		if err != nil {
			providerErr = err
			return
		}

		provider = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(provider)
	})
	if providerErr != nil {
		return nil, providerErr
	}
	return provider.Shutdown, nil
}

// StartServerSpan starts a server-kind span named after the route.
func StartServerSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
	)
}

// SetStatusFromHTTPCode marks 5xx responses as errors. 4xx are the client's
// problem and leave the span unset.
func SetStatusFromHTTPCode(span trace.Span, code int) {
	span.SetAttributes(attribute.Int("http.status_code", code))
	switch {
	case code >= 500:
		span.SetStatus(codes.Error, "server error")
	case code >= 100 && code < 400:
		span.SetStatus(codes.Ok, "")
	}
}
