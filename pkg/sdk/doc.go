// Package sdk provides a Go client for the jurisearch retrieval API.
//
// The client wraps the HTTP surface: precedent search, filter-driven
// suggestions and the health report.
//
//	client := sdk.New("http://localhost:8080")
//	resp, err := client.Search(ctx, sdk.SearchParams{
//	    Query:    "homicídio qualificado",
//	    Topic:    "homicidio",
//	    TopK:     5,
//	    Provider: "hybrid",
//	})
//
// Backing-store failures on the server degrade to empty result sets, so a
// nil error with zero items is a normal outcome.
package sdk
