// Package dev implements the development server: it serves the built web
// side from web/dist, watches web/src for changes, rebuilds on change, and
// pushes reload messages to connected browsers over WebSocket. Build
// metrics are exposed on /metrics in Prometheus format.
package dev
