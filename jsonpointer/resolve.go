package jsonpointer

// Get resolves ptr against doc and returns the referenced value.
func Get(doc any, ptr string) (any, error) {
	p, err := New(ptr)
	if err != nil {
		return nil, err
	}
	return p.Get(doc)
}

// Set replaces the value at ptr, returning the updated document.
func Set(doc any, ptr string, value any) (any, error) {
	p, err := New(ptr)
	if err != nil {
		return nil, err
	}
	return p.Set(doc, value)
}

// Insert adds value at ptr, returning the updated document. Array
// targets accept "-" or an index up to the array length and shift
// later elements right.
func Insert(doc any, ptr string, value any) (any, error) {
	p, err := New(ptr)
	if err != nil {
		return nil, err
	}
	return p.Insert(doc, value)
}

// Remove deletes the value at ptr, returning the updated document.
func Remove(doc any, ptr string) (any, error) {
	p, err := New(ptr)
	if err != nil {
		return nil, err
	}
	return p.Remove(doc)
}

// Get walks the document and returns the value the pointer refers to.
// A failed walk returns a *NotFoundError carrying the depth at which it
// failed, or an *IndexError for bad array tokens.
func (p Pointer) Get(doc any) (any, error) {
	cur := doc
	for i, tok := range p {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[tok]
			if !ok {
				return nil, &NotFoundError{Pointer: p.String(), Depth: i}
			}
			cur = v
		case []any:
			idx, err := elementIndex(tok, len(node))
			if err != nil {
				return nil, err
			}
			cur = node[idx]
		default:
			return nil, &NotFoundError{Pointer: p.String(), Depth: i}
		}
	}
	return cur, nil
}

// Set replaces the value at the pointer's target, which must already
// exist for array targets. Object targets are insert-or-overwrite.
// The returned document shares all untouched subtrees with doc.
func (p Pointer) Set(doc any, value any) (any, error) {
	if p.IsRoot() {
		return value, nil
	}
	return p.write(doc, 0, func(container any) (any, error) {
		tok := p.Last()
		switch t := container.(type) {
		case map[string]any:
			return cloneMapWith(t, tok, value), nil
		case []any:
			idx, err := elementIndex(tok, len(t))
			if err != nil {
				return nil, err
			}
			return cloneSliceWith(t, idx, value), nil
		default:
			return nil, &NotFoundError{Pointer: p.String(), Depth: len(p) - 1}
		}
	})
}

// Insert adds value at the pointer's target. For arrays the final
// token may be "-" (append) or any index up to and including the
// current length; later elements shift right. For objects it is
// insert-or-overwrite. The returned document shares all untouched
// subtrees with doc.
func (p Pointer) Insert(doc any, value any) (any, error) {
	if p.IsRoot() {
		return value, nil
	}
	return p.write(doc, 0, func(container any) (any, error) {
		tok := p.Last()
		switch t := container.(type) {
		case map[string]any:
			return cloneMapWith(t, tok, value), nil
		case []any:
			idx := len(t)
			if tok != "-" {
				var err error
				idx, err = ParseArrayIndex(tok)
				if err != nil {
					return nil, err
				}
			}
			if idx > len(t) {
				return nil, &IndexError{Token: tok, Index: idx, Length: len(t)}
			}
			out := make([]any, 0, len(t)+1)
			out = append(out, t[:idx]...)
			out = append(out, value)
			out = append(out, t[idx:]...)
			return out, nil
		default:
			return nil, &NotFoundError{Pointer: p.String(), Depth: len(p) - 1}
		}
	})
}

// Remove deletes the pointer's target, which must exist. Array removal
// shifts later elements left. The returned document shares all
// untouched subtrees with doc.
func (p Pointer) Remove(doc any) (any, error) {
	if p.IsRoot() {
		return nil, &SyntaxError{Pointer: "", Reason: "cannot remove the document root"}
	}
	return p.write(doc, 0, func(container any) (any, error) {
		tok := p.Last()
		switch t := container.(type) {
		case map[string]any:
			if _, ok := t[tok]; !ok {
				return nil, &NotFoundError{Pointer: p.String(), Depth: len(p) - 1}
			}
			out := make(map[string]any, len(t)-1)
			for k, v := range t {
				if k != tok {
					out[k] = v
				}
			}
			return out, nil
		case []any:
			idx, err := elementIndex(tok, len(t))
			if err != nil {
				return nil, err
			}
			out := make([]any, 0, len(t)-1)
			out = append(out, t[:idx]...)
			out = append(out, t[idx+1:]...)
			return out, nil
		default:
			return nil, &NotFoundError{Pointer: p.String(), Depth: len(p) - 1}
		}
	})
}

// write rebuilds the spine from node down to the pointer's parent
// container and applies mutate to that container. Callers guard the
// root pointer case.
func (p Pointer) write(node any, depth int, mutate func(container any) (any, error)) (any, error) {
	if depth == len(p)-1 {
		return mutate(node)
	}
	tok := p[depth]
	switch t := node.(type) {
	case map[string]any:
		child, ok := t[tok]
		if !ok {
			return nil, &NotFoundError{Pointer: p.String(), Depth: depth}
		}
		updated, err := p.write(child, depth+1, mutate)
		if err != nil {
			return nil, err
		}
		return cloneMapWith(t, tok, updated), nil
	case []any:
		idx, err := elementIndex(tok, len(t))
		if err != nil {
			return nil, err
		}
		updated, err := p.write(t[idx], depth+1, mutate)
		if err != nil {
			return nil, err
		}
		return cloneSliceWith(t, idx, updated), nil
	default:
		return nil, &NotFoundError{Pointer: p.String(), Depth: depth}
	}
}

// elementIndex parses tok as a reference to an existing element of an
// array of length n. "-" never refers to an existing element.
func elementIndex(tok string, n int) (int, error) {
	if tok == "-" {
		return 0, &IndexError{Token: tok, Index: n, Length: n}
	}
	idx, err := ParseArrayIndex(tok)
	if err != nil {
		return 0, err
	}
	if idx >= n {
		return 0, &IndexError{Token: tok, Index: idx, Length: n}
	}
	return idx, nil
}

func cloneMapWith(src map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	out[key] = value
	return out
}

func cloneSliceWith(src []any, idx int, value any) []any {
	out := make([]any, len(src))
	copy(out, src)
	out[idx] = value
	return out
}
