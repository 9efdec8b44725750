// Package service implements the WAP operations over the store: posting and
// reading annotations and containers, paging container views, dynamic
// property queries and deletion.
//
// Every operation runs in one store transaction. Write operations touch the
// object graph, the owning container's sequence and the container's etag
// together, so a failure part way leaves the previous state visible.
package service
