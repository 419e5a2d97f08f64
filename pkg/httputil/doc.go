// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteSuccess(w, data)
//	httputil.WriteCreated(w, resource)
//	httputil.WriteNoContent(w)
//
// Error responses:
//
//	httputil.WriteValidationError(w, "invalid descriptor")
//	httputil.WriteNotFoundError(w, "plugin not found")
//	httputil.WriteConflict(w, "plugin already registered")
//	httputil.WriteInternalError(w, err)
//
// # Request Parsing
//
//	var d extension.Descriptor
//	if !httputil.ParseJSONOrError(w, r, &d) {
//		return // Error response already written
//	}
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//	)
package httputil
