// Package harness runs YAML scenarios against a fresh store and compares
// what each step observed with golden snapshots.
//
// # Scenario Format
//
//	name: paging
//	description: "Posted annotations are paged in posting order"
//	config:
//	  page_size: 2
//	  backend: graph
//	payloads:
//	  note: |
//	    _:a <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/oa#Annotation> .
//	steps:
//	  - op: post_annotation
//	    container: "${base}"
//	    payload: note
//	  - op: get_page
//	    container: "${base}"
//	    page: 0
//	    iris_only: true
//	    expect:
//	      items: ["${base}a1"]
//	  - op: get_page
//	    container: "${base}"
//	    page: 3
//	    expect:
//	      error: NOT_EXISTENT
//	assertions:
//	  - type: container_total
//	    container: "${base}"
//	    count: 1
//
// ${base} expands to the base IRI in every string field. The root container
// exists before the first step.
//
// # Operations
//
// post_annotation, post_container, get_annotation, get_container, get_page,
// delete_annotation and query. A step without an expect clause must
// succeed; expect.error names the waperr code the step must fail with.
//
// # Assertion Types
//
//   - container_total: the container's annotation count
//   - container_children: the container's sub-containers, in order
//   - annotation_deleted: the annotation is stored and marked deleted
//   - graph_count: the number of stored named graphs
//
// # Deterministic Testing
//
// Scenarios run on an in-memory SQLite database with a step clock starting
// at testutil.Epoch and identities a1, a2, ... so traces are identical
// across runs and can be compared with testdata/golden/<name>.golden.
package harness
