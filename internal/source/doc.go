// Package source loads realm documents.
//
// A Source yields named documents: Files reads files and directories from
// disk, ConfigMap reads the keys of a Kubernetes ConfigMap. Load concatenates
// the documents of several sources and optionally renders every document as
// a Go template with the sprig function library before it is decoded.
package source
