// Package shopapi is a JSON:API server and client for an e-commerce shop.
//
// # Overview
//
// Shopapi translates REST requests for shop resources into calls against
// a frontend domain layer and renders the results as JSON:API compound
// documents: primary data, typed relationship pointers and a flattened,
// deduplicated included side-table. A Go client package consumes the
// same documents and resolves relationships lazily.
//
// The module consists of three main components:
//   - API Server: resource controllers under /jsonapi (Echo REST)
//   - Document Builder: compound-document assembly with sparse
//     fieldsets, pagination links and cycle-safe included collection
//   - Client: transport facade, per-resource managers and item wrappers
//     with lazy relationship resolution
//
// # Architecture
//
//	┌─────────────────┐
//	│  Client         │
//	│  (pkg/shopapi)  │
//	└────────┬────────┘
//	         │
//	┌────────▼────────┐       ┌─────────────────┐
//	│  API Server     │◄──────┤ Document Builder│
//	│  (Echo REST)    │       │ (internal/jsonapi)
//	└────────┬────────┘       └─────────────────┘
//	         │
//	┌────────▼────────┐
//	│  Frontend Layer │
//	│  (domain ctrl.) │
//	└─────────────────┘
//
// # Core Features
//
// Compound documents:
//   - Relationship pointers with link-level attributes
//   - Included table deduplicated by (type, id), cycle safe
//   - Sparse fieldsets and derived pagination links
//
// REST API:
//   - Products, services, reviews, baskets, orders, customers
//   - OPTIONS bootstrap with the resource registry and csrf pair
//   - Bearer tokens for customers, cookie sessions for guests
//
// Client:
//   - Per-resource managers (create, find, get, search, update, delete)
//   - Item/RelItem read views over the decoded payload
//   - Opportunistic csrf refresh from every response
//
// # Getting Started
//
// Start the server:
//
//	shopd server --config config.yaml
//
// Consume it:
//
//	c := client.New(nil)
//	if err := c.Bootstrap(ctx, "http://localhost:8080/jsonapi"); err != nil { ... }
//	products, _ := c.Use("product")
//	result, _ := products.Find(ctx, "demo-article", "media", "price")
package shopapi
