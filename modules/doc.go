// Package modules provides typed wrappers for a few public functions of the
// Jutge API, on top of core.Client.
//
// Every wrapper is a thin call through the client: the function name and the
// shape of its input and output are the only things it adds.
//
//	api := modules.New(core.NewClient(rpc.NewFromEnv()))
//	fortune, err := api.Misc.GetFortune(ctx)
//
// Functions without a wrapper can be called directly with core.Client.Execute
// and decoded with Decode.
package modules
