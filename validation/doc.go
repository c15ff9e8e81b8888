// Package validation provides structural validation for API responses and
// request payloads.
//
// Schema builds a response validator for the request engine from a typed
// struct's validate tags:
//
//	type Farm struct {
//	    ID   string `json:"id" validate:"required,uuid4"`
//	    Name string `json:"name" validate:"required"`
//	}
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method:    http.MethodGet,
//	    Path:      "/farms/" + id,
//	    Validator: validation.Schema[Farm](),
//	})
//
// A failing schema converts an otherwise-successful response into a
// terminal validation error; structurally wrong responses are never
// retried.
package validation
