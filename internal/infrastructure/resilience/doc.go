/*
Package resilience provides the circuit breaker that guards remote evaluation.

# Usage

	breaker := resilience.New("calc-remote", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || expr.KindOf(err) != expr.KindNone
		},
	})

	n, err := resilience.Call(ctx, breaker, func(ctx context.Context) (*Response, error) {
		return c.post(ctx, req)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                         Open

Counts reset whenever the state changes and every Interval while closed.
Results reported by a stale generation are ignored.
*/
package resilience
