// Package otel bridges authflow metrics into the OpenTelemetry metric API
// via observable instruments fed from engine snapshots.
package otel
