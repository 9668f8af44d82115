// Package expr defines the generic, persisted form of a document: a tree of
// tagged expression nodes.
//
// # Overview
//
// Every node of a document, whatever its kind, is stored as a [Node] with a
// dotted tag ("Diagramming.Tree", "String.String", "Math.Arithmetic.Addition"),
// an optional scalar value, named attribute strings and ordered children.
// Diagram-specific kinds interpret their attributes when the document is
// loaded; see the document package.
//
// # Formats
//
// Documents are read from JSON or YAML with [Read] / [ReadFile] and written as
// indented JSON with [Write]:
//
//	{
//	  "tag": "Diagramming.ToTree",
//	  "children": [
//	    {"tag": "Math.Arithmetic.Addition", "children": [
//	      {"tag": "Symbol", "value": "x"},
//	      {"tag": "Symbol", "value": "y"}
//	    ]}
//	  ]
//	}
package expr
