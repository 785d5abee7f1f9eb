package directive

import (
	"go/ast"
	"go/token"
	"strings"
	"unicode/utf8"
)

// Annotation is one raw //from occurrence found in a comment.
type Annotation struct {
	// Pos is the position of the comment.
	Pos token.Position
	// PayloadPos is the position right after the marker.
	PayloadPos token.Position
	// Payload is the comment text following the marker.
	Payload string
}

// Result pairs an annotation with its parse outcome. Exactly one of
// Directive and Err is meaningful.
type Result struct {
	Annotation
	Directive Directive
	Err       error
}

// Collect returns the //from annotations found in groups, in order. Nil
// groups are skipped. Only line comments whose marker is exactly Marker
// count; //fromage or "// from the db" are ordinary comments. The spaced
// form "// from(" is accepted because gofmt rewrites top-level doc comments
// that way.
func Collect(fset *token.FileSet, groups ...*ast.CommentGroup) []Annotation {
	var out []Annotation
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			payload, ok := cutMarker(c.Text)
			if !ok {
				continue
			}
			pos := fset.Position(c.Slash)
			payloadPos := pos
			shift := len(c.Text) - len(payload)
			payloadPos.Offset += shift
			payloadPos.Column += shift
			out = append(out, Annotation{Pos: pos, PayloadPos: payloadPos, Payload: payload})
		}
	}
	return out
}

// ParseAll parses every annotation independently. It never stops early.
func ParseAll(annotations []Annotation) []Result {
	results := make([]Result, 0, len(annotations))
	for _, a := range annotations {
		d, err := Parse(a.Payload)
		results = append(results, Result{Annotation: a, Directive: d, Err: err})
	}
	return results
}

func cutMarker(text string) (string, bool) {
	if rest, ok := strings.CutPrefix(text, "// "+Marker); ok {
		return rest, strings.HasPrefix(rest, "(")
	}
	rest, ok := strings.CutPrefix(text, "//"+Marker)
	if !ok {
		return "", false
	}
	if r, _ := utf8.DecodeRuneInString(rest); rest != "" && isIdentRune(r) {
		return "", false
	}
	return rest, true
}
