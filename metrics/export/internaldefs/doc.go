// Package internaldefs holds the shared metric definitions consumed by the
// Prometheus and OTel exporters. It is internal to metrics/export and not
// part of the public authflow surface.
package internaldefs
