// Package vocab holds the IRIs of the vocabularies used by annotation graphs.
//
// Constants are grouped by namespace. Only the terms the store reads or
// writes are listed; this is not a complete vocabulary mirror.
package vocab

// Namespaces.
const (
	RDFNamespace     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace    = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace     = "http://www.w3.org/2001/XMLSchema#"
	OANamespace      = "http://www.w3.org/ns/oa#"
	ASNamespace      = "http://www.w3.org/ns/activitystreams#"
	LDPNamespace     = "http://www.w3.org/ns/ldp#"
	DCTermsNamespace = "http://purl.org/dc/terms/"
	FOAFNamespace    = "http://xmlns.com/foaf/0.1/"
	WAPNamespace     = "http://dem.scc.kit.edu/wapserv/ns#"
)

// RDF core.
const (
	RDFType  = RDFNamespace + "type"
	RDFValue = RDFNamespace + "value"
	RDFSeq   = RDFNamespace + "Seq"
	RDFFirst = RDFNamespace + "first"
	RDFRest  = RDFNamespace + "rest"
	RDFNil   = RDFNamespace + "nil"

	// RDFMemberPrefix prefixes container membership properties (rdf:_1, rdf:_2, ...).
	RDFMemberPrefix = RDFNamespace + "_"
)

// RDFS.
const (
	RDFSLabel = RDFSNamespace + "label"
)

// XSD datatypes.
const (
	XSDString             = XSDNamespace + "string"
	XSDBoolean            = XSDNamespace + "boolean"
	XSDDateTime           = XSDNamespace + "dateTime"
	XSDNonNegativeInteger = XSDNamespace + "nonNegativeInteger"
)

// Web Annotation Data Model.
const (
	OAAnnotation  = OANamespace + "Annotation"
	OAHasTarget   = OANamespace + "hasTarget"
	OAHasBody     = OANamespace + "hasBody"
	OAHasSource   = OANamespace + "hasSource"
	OAHasSelector = OANamespace + "hasSelector"
	OAVia         = OANamespace + "via"
)

// Activity Streams collections and paging.
const (
	ASOrderedCollection     = ASNamespace + "OrderedCollection"
	ASOrderedCollectionPage = ASNamespace + "OrderedCollectionPage"
	ASItems                 = ASNamespace + "items"
	ASTotalItems            = ASNamespace + "totalItems"
	ASFirst                 = ASNamespace + "first"
	ASLast                  = ASNamespace + "last"
	ASNext                  = ASNamespace + "next"
	ASPrev                  = ASNamespace + "prev"
	ASPartOf                = ASNamespace + "partOf"
	ASStartIndex            = ASNamespace + "startIndex"
)

// Linked Data Platform.
const (
	LDPBasicContainer = LDPNamespace + "BasicContainer"
	LDPContains       = LDPNamespace + "contains"
)

// Dublin Core terms and FOAF.
const (
	DCTermsCreated  = DCTermsNamespace + "created"
	DCTermsModified = DCTermsNamespace + "modified"
	DCTermsCreator  = DCTermsNamespace + "creator"
	FOAFName        = FOAFNamespace + "name"
)

// Server-private bookkeeping predicates.
const (
	WAPETag    = WAPNamespace + "etag"
	WAPDeleted = WAPNamespace + "deleted"
)

// Suffixes deriving the two sequence identities owned by a container.
const (
	ContainerSeqSuffix  = "#containers"
	AnnotationSeqSuffix = "#annotations"
)
