// Package httputil retries transient failures in calls to remote services.
//
// Callers mark an error as transient by wrapping it in [RetryableError];
// anything else stops [Retry] immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// The registry client retries network errors and 5xx responses this way, and
// the object store retries its initial connection check.
package httputil
