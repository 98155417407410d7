/*
Package ws streams evaluations over a WebSocket at GET /stream.

Client messages:

	{"type": "evaluate", "expression": "(2+3)*4", "mode": "int"}
	{"type": "ping"}

Server replies carry the same shape as the REST endpoints:

	{"type": "result", "result": 20, "formatted": "20", "mode": "int", ...}
	{"type": "error", "error": "...", "kind": "division_by_zero", "code": 1, ...}
	{"type": "pong", ...}

The first frame after the upgrade is {"type": "system"} with the connection ID.
*/
package ws
