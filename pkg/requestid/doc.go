// Package requestid attaches a correlation ID to every HTTP request so log
// records of the lookup service can be tied to a single call.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Client supplied IDs longer than 128 characters or containing anything
// other than letters, digits, '-' and '_' are replaced with a fresh UUID.
package requestid
