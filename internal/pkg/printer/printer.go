package printer

import (
	"strings"

	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
	"github.com/T-Brick/parse-sml/internal/pkg/doc"
)

// Print renders a parsed source file at the given layout settings.
// The result always ends in a newline.
func Print(tree *parsed.Ast, settings doc.Settings) string {
	return doc.Render(astDoc(tree), settings) + "\n"
}

func astDoc(tree *parsed.Ast) doc.Doc {
	var d doc.Doc
	for i, entry := range tree.Decs {
		entryDoc := topDecDoc(entry.Dec)
		if entry.Semicolon != nil {
			entryDoc = doc.Beside(entryDoc, tok(*entry.Semicolon))
		}
		if i == 0 {
			d = entryDoc
		} else {
			d = doc.Above(d, entryDoc)
		}
	}
	trailing := commentsDoc(tree.EOF.LeadingComments)
	switch {
	case d == nil && trailing == nil:
		return doc.Empty()
	case d == nil:
		return trailing
	case trailing == nil:
		return d
	}
	return doc.Above(d, trailing)
}

// tok renders a token with any leading comments stacked above it.
func tok(t ast.Token) doc.Doc {
	text := doc.Text(t.Text())
	comments := commentsDoc(t.LeadingComments)
	if comments == nil {
		return text
	}
	return doc.Above(comments, text)
}

func commentsDoc(comments []ast.Token) doc.Doc {
	var d doc.Doc
	for i, c := range comments {
		cd := doc.Text(normalizeComment(c))
		if i == 0 {
			d = cd
		} else {
			d = doc.Above(d, cd)
		}
	}
	return d
}

// normalizeComment strips the comment's original starting column from
// its continuation lines so the renderer can re-indent the whole block
// at the current base, keeping any deeper relative indentation.
func normalizeComment(c ast.Token) string {
	text := c.Text()
	if !strings.Contains(text, "\n") {
		return text
	}
	_, startCol, _, _ := c.Location.GetLineAndColumn()
	origIndent := startCol - 1
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		stripped := 0
		for stripped < origIndent && stripped < len(line) && line[stripped] == ' ' {
			stripped++
		}
		lines[i] = line[stripped:]
	}
	return strings.Join(lines, "\n")
}

// sp joins documents with single spaces.
func sp(docs ...doc.Doc) doc.Doc {
	var parts []doc.Doc
	for i, d := range docs {
		if i > 0 {
			parts = append(parts, doc.Space())
		}
		parts = append(parts, d)
	}
	return doc.Beside(parts...)
}

// headerBody is the group-then-indent shape: flat when it fits, else
// the body on its own line one indent level in.
func headerBody(header, body doc.Doc) doc.Doc {
	return doc.Group(doc.AboveOrSpace(header, doc.Indent(body)))
}

// sequence lays out a delimited aggregate: flat when it fits, else one
// element per line with the delimiter leading each continuation,
// aligned behind the opening token.
func sequence(open ast.Token, delims []ast.Token, closing ast.Token, elems []doc.Doc) doc.Doc {
	if len(elems) == 0 {
		return doc.Beside(tok(open), tok(closing))
	}
	d := doc.Beside(tok(open), doc.BreakSpace(), elems[0])
	for i := 1; i < len(elems); i++ {
		d = doc.AboveOrBeside(d, doc.Beside(tok(delims[i-1]), doc.Space(), elems[i]))
	}
	d = doc.AboveOrBeside(d, tok(closing))
	return doc.Group(d)
}

func longIdDoc(id parsed.LongId) doc.Doc {
	var parts []doc.Doc
	for i, piece := range id.Pieces {
		if i > 0 {
			parts = append(parts, tok(id.Dots[i-1]))
		}
		parts = append(parts, tok(piece))
	}
	return doc.Beside(parts...)
}

// identDoc renders an optionally op-prefixed identifier reference.
func identDoc(op *ast.Token, id parsed.LongId) doc.Doc {
	if op != nil {
		return sp(tok(*op), longIdDoc(id))
	}
	return longIdDoc(id)
}

func parens(d doc.Doc) doc.Doc {
	return doc.Beside(doc.Text("("), d, doc.Text(")"))
}

// placeholder stands in for syntax the translator does not recognize;
// it keeps Print total.
func placeholder() doc.Doc {
	return doc.Text("(* unformatted *)")
}
