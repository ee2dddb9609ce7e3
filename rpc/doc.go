// Package rpc implements the Jutge multipart RPC envelope codec and the HTTP
// endpoint that carries it.
//
// A call is sent as a multipart/form-data body with a "data" part holding
// the JSON envelope {"func", "input", "meta"} and one "file_i" part per
// attachment. The reply is multipart too: exactly one JSON answer part plus
// zero or more file parts, which are returned as downloads in reply order.
//
// # Basic Usage
//
//	client := core.NewClient(rpc.NewFromEnv())
//	out, downloads, err := client.Execute(ctx, "misc.getLogo", nil)
//
// # Errors
//
// Server-reported failures are returned as *core.APIError values whose Kind
// follows the error name in the answer. Replies that cannot be decoded yield
// core.ErrMalformedResponse and transport failures core.ErrNetwork:
//
//	if errors.Is(err, core.ErrNotFound) {
//	    // handle missing resource
//	}
package rpc
