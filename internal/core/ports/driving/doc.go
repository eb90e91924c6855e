// Package driving provides interfaces for inbound adapters
// (primary ports): the operations the CLI, HTTP API, and MCP surface
// invoke on the core.
package driving
