// Package arp is a streaming RDF/XML parser.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Author: Stephane Fellah (stephanef@geoknoesis.com)
// Geosemantic-AI expert with 30 years of experience
//
// The parser turns a stream of XML events into RDF triples following the
// RDF/XML grammar. It never builds a tree: every element is recognized as it
// arrives and its triples are handed to a StatementHandler in document order.
//
// The main pieces are:
//   - XMLEventSource and NewXMLSource: the XML layer (encoding/xml based).
//   - Token: the grammar terminals produced from XML events.
//   - PipeMode: cooperative pull or push/pull delivery of tokens.
//   - ErrorMode: per-condition severity policy with named presets.
//   - Parser: the grammar recognizer, driven by Parse or NewDecoder.
//
// Example (streaming statements):
//
//	err := arp.Parse(ctx, r, handler,
//	    arp.OptBase("http://example.org/doc"),
//	    arp.OptPreset(arp.PresetStrict),
//	)
//
// Example (pull decoding):
//
//	dec := arp.NewDecoder(r, arp.OptBase("http://example.org/doc"))
//	defer dec.Close()
//	for {
//	    t, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    fmt.Println(t)
//	}
//
// Diagnostics are classified by Condition. Each condition maps to a Severity
// through the active ErrorMode: ignored conditions are dropped, warnings are
// reported and parsing continues, errors discard the current production and
// parsing resumes with its siblings, fatal errors end the parse.
package arp
