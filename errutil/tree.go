package errutil

import (
	"fmt"
	"io/fs"

	"github.com/xeptore/flaw/v8"
)

// ErrInfo is one node of an error chain. Op and Path are set on nodes that
// are file system errors, which is where nearly every conversion failure
// starts.
type ErrInfo struct {
	Message    string
	TypeName   string
	SyntaxRepr string
	Op         string
	Path       string
	Children   []ErrInfo
}

func (e ErrInfo) FlawP() flaw.P {
	var ch []flaw.P
	if len(e.Children) > 0 {
		ch = make([]flaw.P, len(e.Children))
		for i, child := range e.Children {
			ch[i] = child.FlawP()
		}
	}

	p := flaw.P{
		"message":     e.Message,
		"type_name":   e.TypeName,
		"syntax_repr": e.SyntaxRepr,
		"children":    ch,
	}
	if e.Path != "" {
		p["op"] = e.Op
		p["path"] = e.Path
	}
	return p
}

// Tree flattens err and everything it wraps into an ErrInfo tree.
func Tree(err error) ErrInfo {
	if err == nil {
		panic("nil error")
	}

	//nolint:errorlint
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		var children []ErrInfo
		if inner := x.Unwrap(); nil != inner {
			children = []ErrInfo{Tree(inner)}
		}
		return node(err, children)
	case interface{ Unwrap() []error }:
		errs := x.Unwrap()
		joined := make([]ErrInfo, 0, len(errs))
		for _, inner := range errs {
			joined = append(joined, Tree(inner))
		}
		return node(err, joined)
	default:
		return node(err, nil)
	}
}

func node(err error, children []ErrInfo) ErrInfo {
	info := ErrInfo{
		Message:    err.Error(),
		TypeName:   fmt.Sprintf("%T", err),
		SyntaxRepr: fmt.Sprintf("%+#v", err),
		Op:         "",
		Path:       "",
		Children:   children,
	}
	// Only the node that is itself the path error carries its location.
	//nolint:errorlint
	if pathErr, ok := err.(*fs.PathError); ok {
		info.Op = pathErr.Op
		info.Path = pathErr.Path
	}
	return info
}
