package tracing

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanPrefixWorker   = "orders.worker."
	SpanServiceLogin   = "orders.service.login"
	SpanServiceRefresh = "orders.service.refresh"
	SpanSourceLogin    = "orders.source.login"
	SpanSourceFetch    = "orders.source.fetch"
)

// Attribute keys.
const (
	AttrOp         = "orders.op"
	AttrUser       = "orders.user"
	AttrOrderCount = "orders.count"
	AttrRelogin    = "orders.relogin"
	AttrSnapshot   = "orders.snapshot_saved"
	AttrBaseURL    = "http.base_url"
)

// End closes span with an error or OK status.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
