// Package verify calls a remote location verification service.
//
// A call sends {"key": <api key>} and expects {"token": "<string>"} back.
// Only that string is taken from the response. Error payloads are truncated
// and logged, never interpreted.
//
//	c, err := verify.New(cfg, verify.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	token, err := c.Verify(ctx)
//	switch {
//	case errors.Is(err, verify.ErrNotVerified):
//		// remote said no
//	case errors.Is(err, verify.ErrUnavailable):
//		// remote unreachable, timed out or circuit open
//	}
//
// A circuit breaker stops calls for a cooldown after repeated transport failures.
package verify
