// Package model holds the WAP domain objects built on top of triple graphs.
//
// Annotation and Container embed Object, which owns the graph, the identity
// and the etag lifecycle. Page is transient: it is assembled from stored
// objects for one view and never persisted. DeriveOutputView turns a stored
// container graph into its servable representation without touching the
// stored copy.
//
// Objects never share graphs. Constructors clone or take ownership of the
// graph they are handed, and cross-object references are plain IRIs.
package model
