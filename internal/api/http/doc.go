/*
Package http exposes the evaluator over REST.

	GET  /                  service banner
	GET  /health            registry and evaluation counters
	GET  /stats             aggregated counters with error rate
	POST /evaluate          {"expression": "...", "mode": "int|float"}
	POST /validate          structural check only
	POST /batch             {"expressions": [...], "mode": "..."}
	GET  /services          registered services
	POST /services/execute  {"tool_id": "calc.evaluate", "params": {...}}

Evaluation failures are answered with 422 and a body carrying the error kind
and the exit code the CLI would use for the same input. Malformed requests
are answered with 400.
*/
package http
