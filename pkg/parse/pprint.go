package parse

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	// Long string properties keep this many bytes on each side of "...".
	quoteKeep   = 10
	indentWidth = 2
)

// Render returns a pretty-printed dump of the AST rooted at n. Each node is
// printed on its own line with its properties, and children are indented two
// spaces deeper than their parent. A node with a single child spanning the
// same source text is coalesced with it into one line, like "Chunk/Assign".
//
// A property field may carry a `fmt` struct tag, which is used as its format
// verb instead of the default %v.
func Render(n Node) string {
	var sb strings.Builder
	renderNode(&sb, n, 0, "")
	return sb.String()
}

var nodeType = reflect.TypeOf((*Node)(nil)).Elem()

func renderNode(sb *strings.Builder, n Node, indent int, prefix string) {
	if ch := Children(n); len(ch) == 1 && SourceText(ch[0]) == SourceText(n) {
		renderNode(sb, ch[0], indent, prefix+typeName(n)+"/")
		return
	}

	v := reflect.ValueOf(n).Elem()
	t := v.Type()
	var children []Node
	sb.WriteString(strings.Repeat(" ", indent))
	sb.WriteString(prefix)
	sb.WriteString(t.Name())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			continue
		}
		fv := v.Field(i)
		switch {
		case f.Type.Implements(nodeType):
			if !fv.IsNil() {
				children = append(children, fv.Interface().(Node))
			}
		case f.Type.Kind() == reflect.Slice && f.Type.Elem().Implements(nodeType):
			for j := 0; j < fv.Len(); j++ {
				children = append(children, fv.Index(j).Interface().(Node))
			}
		default:
			sb.WriteString(" " + f.Name + "=" + formatProperty(f, fv.Interface()))
		}
	}
	sb.WriteString("\n")
	for _, ch := range children {
		renderNode(sb, ch, indent+indentWidth, "")
	}
}

func typeName(n Node) string { return reflect.TypeOf(n).Elem().Name() }

func formatProperty(f reflect.StructField, value any) string {
	if verb := f.Tag.Get("fmt"); verb != "" {
		return fmt.Sprintf(verb, value)
	}
	if s, ok := value.(string); ok {
		if len(s) > 2*quoteKeep+3 {
			s = s[:quoteKeep] + "..." + s[len(s)-quoteKeep:]
		}
		return Quote(s)
	}
	return fmt.Sprint(value)
}
