// Package querybuild turns WADM property filters into graph-pattern queries.
//
// A WADM property can be expressed by more than one statement shape: a
// target is either the annotation's oa:hasTarget object or the oa:hasSource
// of a specific resource, a body is either an IRI or a resource with an
// rdf:value, and so on. Each property therefore becomes a union of its
// shapes, and the properties are conjoined inside one named graph.
//
// Under Contains matching the value node becomes a free variable filtered by
// substring containment of its string form.
package querybuild
