package arp

import (
	"context"

	"github.com/piprate/json-gold/ld"
)

const jsonldDefaultGraph = "@default"

// JSONLDCollector gathers the triples of a parse into a JSON-LD dataset.
// It implements StatementHandler and NamespaceHandler; the prefixes it
// sees become the @context of the compacted form.
type JSONLDCollector struct {
	dataset  *ld.RDFDataset
	prefixes map[string]string
	base     string
}

// NewJSONLDCollector creates an empty collector. base, if not empty, is
// used when compacting.
func NewJSONLDCollector(base string) *JSONLDCollector {
	return &JSONLDCollector{
		dataset:  ld.NewRDFDataset(),
		prefixes: make(map[string]string),
		base:     base,
	}
}

// Statement adds a triple with a resource object.
func (c *JSONLDCollector) Statement(subj, pred, obj *Resource) error {
	c.add(subj, pred, jsonldNode(obj))
	return nil
}

// StatementLiteral adds a triple with a literal object.
func (c *JSONLDCollector) StatementLiteral(subj, pred *Resource, lit Literal) error {
	c.add(subj, pred, jsonldLiteral(lit))
	return nil
}

func (c *JSONLDCollector) add(subj, pred *Resource, obj ld.Node) {
	quad := ld.NewQuad(jsonldNode(subj), ld.NewIRI(pred.URI()), obj, jsonldDefaultGraph)
	c.dataset.Graphs[jsonldDefaultGraph] = append(c.dataset.Graphs[jsonldDefaultGraph], quad)
}

// StartPrefixMapping records prefix. The first URI bound to a prefix wins.
func (c *JSONLDCollector) StartPrefixMapping(prefix, uri string) error {
	if _, ok := c.prefixes[prefix]; !ok {
		c.prefixes[prefix] = uri
	}
	return nil
}

// EndPrefixMapping does nothing; prefixes stay in the @context.
func (c *JSONLDCollector) EndPrefixMapping(string) error { return nil }

// Dataset returns the collected dataset.
func (c *JSONLDCollector) Dataset() *ld.RDFDataset { return c.dataset }

// Len returns the number of triples collected.
func (c *JSONLDCollector) Len() int { return len(c.dataset.Graphs[jsonldDefaultGraph]) }

// Document returns the collected triples as expanded JSON-LD.
func (c *JSONLDCollector) Document(ctx context.Context) ([]interface{}, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	opts := ld.NewJsonLdOptions(c.base)
	return ld.NewJsonLdApi().FromRDF(c.dataset, opts)
}

// Compacted returns the collected triples as compacted JSON-LD using the
// prefixes seen during the parse.
func (c *JSONLDCollector) Compacted(ctx context.Context) (map[string]interface{}, error) {
	doc, err := c.Document(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	opts := ld.NewJsonLdOptions(c.base)
	return ld.NewJsonLdProcessor().Compact(doc, c.Context(), opts)
}

// Context returns a JSON-LD @context mapping the recorded prefixes. The
// default namespace becomes @vocab.
func (c *JSONLDCollector) Context() map[string]interface{} {
	terms := make(map[string]interface{}, len(c.prefixes))
	for prefix, uri := range c.prefixes {
		if uri == "" {
			continue
		}
		if prefix == "" {
			terms["@vocab"] = uri
			continue
		}
		terms[prefix] = uri
	}
	return map[string]interface{}{"@context": terms}
}

func jsonldNode(r *Resource) ld.Node {
	if r.IsAnonymous() {
		return ld.NewBlankNode("_:" + r.AnonymousID())
	}
	return ld.NewIRI(r.URI())
}

func jsonldLiteral(lit Literal) ld.Node {
	switch {
	case lit.Lang != "":
		return ld.NewLiteral(lit.Lexical, ld.RDFLangString, lit.Lang)
	case lit.Datatype.Value != "":
		return ld.NewLiteral(lit.Lexical, lit.Datatype.Value, "")
	}
	return ld.NewLiteral(lit.Lexical, ld.XSDString, "")
}
