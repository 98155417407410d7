// Package types provides shared data structures for the calculator service.
//
// Core Types:
//   - Service, Tool, Parameter: Provider definitions exposed by the registry
//   - Context: Caller metadata for a tool execution
//   - Result: Standard tool result
//
// Request Types:
//   - EvaluateRequest, BatchRequest: REST evaluation payloads
//   - ExecuteRequest: Service tool execution
//   - WSMessage: WebSocket communication
package types
