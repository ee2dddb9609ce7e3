// Package core provides the client and types for calling the Jutge API.
//
// Every API operation is a remote function identified by a dotted name such
// as "misc.getFortune". A call carries a JSON input and, optionally, binary
// files; the reply carries a JSON output and, optionally, binary downloads.
//
// # Client and Backend
//
// The entry point is [Client], which wraps a [Backend] and adds session
// handling, client-side caching, logging and telemetry:
//
//	backend := rpc.New()
//	client := core.NewClient(backend,
//	    core.WithLogger(logger),
//	    core.WithClientTTLs(map[string]time.Duration{"tables.getCompilers": time.Hour}),
//	)
//
//	output, downloads, err := client.Execute(ctx, "misc.getFortune", nil)
//
// The rpc package provides the HTTP backend that speaks the multipart wire
// format of the API.
//
// # Sessions
//
// [Client.Login] stores the token returned by "auth.login" in the client's
// [Session]; every following call carries it. [Client.Logout] always clears
// the session. A call reads the token once, when it starts, so logging in or
// out concurrently never alters a request in flight.
//
// # Error Handling
//
// Every failure is an [*APIError] whose [ErrorKind] tells what went wrong:
//   - [KindUnauthorized], [KindInfo], [KindNotFound], [KindInput]: reported by the server
//   - [KindProcessing]: reported by the server under an unrecognized name
//   - [KindMalformedResponse]: the reply could not be decoded
//   - [KindNetwork]: no reply was received
//
// Use errors.Is with the matching sentinel:
//
//	if errors.Is(err, core.ErrNotFound) {
//	    // Handle missing entity
//	}
//
// # Caching
//
// Functions given a TTL with [WithClientTTLs] are served from a
// [ResponseCache] while the entry is fresh. Calls with files are never
// cached. [ResponseCache.Snapshot] and [ResponseCache.Restore] move the
// cache contents across processes.
//
// # Thread Safety
//
// [Client], [Session] and [ResponseCache] are safe for concurrent use.
package core
