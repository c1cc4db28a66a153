// Package prometheus renders authflow metrics in the Prometheus text
// exposition format, either as a string or as an http.Handler.
package prometheus
