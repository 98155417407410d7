/*
Command calc evaluates one arithmetic expression read from standard input.

	echo "10-2-3" | calc           # 5
	echo "1.5*2" | calc --float    # 3.0000
	calc serve --port 8000         # HTTP + WebSocket server

On failure a single diagnostic line goes to stderr and the exit status names
the failure class (see calc --help).
*/
package main
