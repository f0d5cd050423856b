// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Every failure that aborts a collection cycle carries one of the codes
// below, so the driver can count outcomes and operators can grep logs:
//
//   - ErrCodeMalformedLine: a parser rejected a line of command output
//   - ErrCodeCollector: a command exited non-zero, timed out, or printed nothing
//   - ErrCodeAssemblyInvariant: a shaping rule's precondition failed
//   - ErrCodePublish: the object-store write failed
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeCollector,
//	    "failed to collect GPU metrics",
//	    ctx.Err(),
//	    map[string]any{
//	        "command": "nvidia-smi",
//	        "host":    host,
//	    },
//	)
//
//	if errors.HasCode(err, errors.ErrCodeCollector) {
//	    // ...
//	}
package errors
