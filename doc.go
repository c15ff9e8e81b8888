// Package agrovia is the Go client SDK for the Agrovia farm-management
// REST API. Resource services (Farmers, Farms, Crops, Activities, Jobs,
// Reports) are thin typed wrappers around a shared request engine that
// owns authentication, timeouts, retries, and error classification; see
// the httpclient package for the engine's semantics.
//
//	client, err := agrovia.New(agrovia.Config{
//	    BaseURL:  "https://api.agrovia.io/v1",
//	    APIToken: os.Getenv("AGROVIA_API_TOKEN"),
//	})
//
//	farm, err := client.Farms.Get(ctx, farmID)
package agrovia
