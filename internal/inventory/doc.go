// Package inventory provides an HTTP client for the inventory tracking API.
//
// # Overview
//
// The inventory service tracks stocked units (a UPC on a shelf) and a tree
// of shelves. This package maps each endpoint to one method on Client and
// decodes JSON responses into small value types. Every method issues exactly
// one request; there is no retry, batching or caching.
//
// # Client Usage
//
//	client, err := inventory.NewClient("http://127.0.0.1:8000")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	if err := client.AddStock(ctx, "036000291452", "backroom"); err != nil {
//		log.Printf("add failed: %v", err)
//	}
//
//	count, err := client.CountStock(ctx, "036000291452")
//
// # API Endpoints
//
//   - POST   /stocking/add/      JSON {upc, shelf}
//   - DELETE /stocking/remove/   query upc, shelf
//   - GET    /stocking/count/    query upc → ItemCount
//   - GET    /stocking/list/     query limit, offset → ItemList
//   - POST   /shelves/create/    JSON {name, parent?}
//   - DELETE /shelves/delete/    query name, delete_items
//   - GET    /stocking/count/    query shelf, limit, offset → Shelf
//   - GET    /stocking/list/     query shelf, limit, offset,
//     include_subshelves, recurse_subshelves → ItemList
//
// The two shelf reads share paths with the stocking reads. That matches the
// deployed server; the paths are constants in client.go.
//
// # Error Handling
//
// Only HTTP 200 is success. Any other status returns a *StatusError:
//
//   - write calls (add, remove, create, delete) keep the response text in Body
//   - read calls leave Body empty
//
// Other failures are wrapped with the operation name:
//
//   - "add stock: execute request: dial tcp: connection refused"
//   - "list stock: decode response: unexpected EOF"
//
// A call never returns both a payload and an error.
//
// # Transport
//
// The http.Client is created on the first call with a 10 second timeout,
// unless WithHTTPClient supplies one. Creation is not synchronised; warm the
// client or supply a transport before sharing it between goroutines. Each
// request carries a fresh X-Request-ID so server logs can be correlated.
//
// # Testing Considerations
//
// API is the interface satisfied by *Client; UI and command code depend on it
// so tests can substitute a fake. Client tests run against httptest servers.
package inventory
