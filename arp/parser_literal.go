package arp

import (
	"sort"
	"strings"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", "\"", "&quot;", "\t", "&#x9;", "\n", "&#xA;", "\r", "&#xD;")
)

// literalCapture renders the content of an rdf:parseType="Literal"
// property element in exclusive XML canonical form. Namespace
// declarations are written on the outermost element that visibly uses
// them.
type literalCapture struct {
	buf      strings.Builder
	rendered []map[string]string // prefixes declared on each open element
}

func (c *literalCapture) inScope(prefix string) (string, bool) {
	for i := len(c.rendered) - 1; i >= 0; i-- {
		if uri, ok := c.rendered[i][prefix]; ok {
			return uri, true
		}
	}
	if prefix == "" {
		return "", true
	}
	return "", false
}

func (c *literalCapture) start(name QName, attrs []Token) {
	used := map[string]string{name.Prefix: name.Space}
	for _, t := range attrs {
		if t.Raw.Prefix != "" && t.Raw.Prefix != "xml" {
			used[t.Raw.Prefix] = t.Raw.Space
		}
	}
	prefixes := make([]string, 0, len(used))
	for prefix := range used {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	c.buf.WriteByte('<')
	c.buf.WriteString(name.Qualified())
	var declared map[string]string
	for _, prefix := range prefixes {
		uri := used[prefix]
		if cur, ok := c.inScope(prefix); ok && cur == uri {
			continue
		}
		if declared == nil {
			declared = make(map[string]string)
		}
		declared[prefix] = uri
		c.buf.WriteString(" xmlns")
		if prefix != "" {
			c.buf.WriteByte(':')
			c.buf.WriteString(prefix)
		}
		c.buf.WriteString("=\"")
		attrEscaper.WriteString(&c.buf, uri)
		c.buf.WriteByte('"')
	}
	c.rendered = append(c.rendered, declared)

	sorted := make([]Token, len(attrs))
	copy(sorted, attrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Raw, sorted[j].Raw
		if a.Space != b.Space {
			return a.Space < b.Space
		}
		return a.Local < b.Local
	})
	for _, t := range sorted {
		c.buf.WriteByte(' ')
		c.buf.WriteString(t.Raw.Qualified())
		c.buf.WriteString("=\"")
		attrEscaper.WriteString(&c.buf, t.Value)
		c.buf.WriteByte('"')
	}
	c.buf.WriteByte('>')
}

func (c *literalCapture) end(name QName) {
	c.buf.WriteString("</")
	c.buf.WriteString(name.Qualified())
	c.buf.WriteByte('>')
	if n := len(c.rendered); n > 0 {
		c.rendered = c.rendered[:n-1]
	}
}

func (c *literalCapture) text(s string) {
	textEscaper.WriteString(&c.buf, s)
}

func (c *literalCapture) comment(s string) {
	c.buf.WriteString("<!--")
	c.buf.WriteString(s)
	c.buf.WriteString("-->")
}

func (c *literalCapture) procInst(target, data string) {
	c.buf.WriteString("<?")
	c.buf.WriteString(target)
	if data != "" {
		c.buf.WriteByte(' ')
		c.buf.WriteString(data)
	}
	c.buf.WriteString("?>")
}

func (c *literalCapture) String() string { return c.buf.String() }

// openLiteral turns fr into the root of an XML literal.
func (p *rdfParser) openLiteral(fr *frame) {
	fr.kind = frameLiteral
	fr.litRoot = true
	fr.lit = &literalCapture{}
	p.push(fr)
}

// openLiteralChild copies an element inside an XML literal.
func (p *rdfParser) openLiteralChild(parent *frame, ctx xmlContext, st *startTag) {
	parent.lit.start(st.tok.Raw, st.attrs.all)
	p.push(&frame{kind: frameLiteral, ctx: ctx, name: st.tok.Raw, loc: st.tok.Location, lit: parent.lit})
}

// closeLiteral emits the rdf:XMLLiteral of a finished literal property.
func (p *rdfParser) closeLiteral(fr *frame) error {
	lex := fr.lit.String()
	if err := p.checkString(lex, fr.loc, "Literal"); err != nil {
		return err
	}
	lit := Literal{Lexical: lex, Datatype: IRI{Value: rdfNS + "XMLLiteral"}, WellFormedXML: true}
	p.emitAbout(fr.bag, fr.subject, fr.pred, litObject(lit), fr.reify)
	return nil
}
