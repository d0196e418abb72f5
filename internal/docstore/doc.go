// Package docstore provides the document store the dictionary synchronizes with.
//
// # Overview
//
// The Store interface is the whole capability surface the dictionary relies on:
// create, point update, point delete, equality query and a live subscription that
// pushes the full current collection on every change. Documents are JSON objects
// addressed by (collection, id); ids are assigned by the store.
//
// # Implementations
//
//   - sqlite.go: SQLite backend. One table holds every collection, payloads are
//     JSON text and equality queries use json_extract. WithUniqueField installs a
//     partial unique expression index so a field (e.g. a normalized name) cannot
//     repeat inside a collection.
//   - server.go: HTTP front for any Store. Subscriptions are websockets.
//   - client.go: Store implementation that talks to a Server.
//
// # Wire Format
//
//	POST   /v1/{collection}                  body: JSON object      -> 201 {"id": "..."}
//	PATCH  /v1/{collection}/{id}             body: merge patch      -> 204
//	DELETE /v1/{collection}/{id}                                    -> 204
//	GET    /v1/{collection}?field=f&value=v  v is JSON encoded      -> 200 {"documents": [...]}
//	GET    /v1/{collection}/subscribe        websocket, server frames:
//	                                           {"documents": [...]} or {"error": "..."}
//	GET    /health
//
// Errors map to statuses: ErrNotFound 404, ErrConflict 409, ErrInvalid 400.
// The client maps them back so callers can use errors.Is on either side.
//
// # Push Semantics
//
// A subscription receives the whole collection immediately and again after each
// write. Change signals coalesce, so a slow subscriber skips intermediate states
// but always ends on the latest one. Subscription callbacks for one subscription
// never run concurrently.
package docstore
