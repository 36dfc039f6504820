package otel

import (
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/rmdhfz/minimart/internal/constants"
)

var Tracer = otel.Tracer(
	constants.AppStoreService,
	trace.WithInstrumentationAttributes(semconv.ServiceNameKey.String(constants.AppStoreService)),
)
