package resolve

import "github.com/wippyai/ffi-reflect/decl"

// findCycle returns the by-value containment path from start back to
// itself, e.g. [A B A], or nil when start can be derived without
// re-entering itself. Pointer members are lookup edges and never count.
func (r *Resolver) findCycle(start string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	visited := map[string]bool{start: true}
	stack := []string{start}

	var walk func(name string) bool
	walk = func(name string) bool {
		d, ok := r.decls[name]
		if !ok {
			return false
		}
		for _, m := range d.Members {
			dep, ok := valueRef(m.Type)
			if !ok {
				continue
			}
			if dep == start {
				stack = append(stack, start)
				return true
			}
			if visited[dep] {
				continue
			}
			visited[dep] = true
			stack = append(stack, dep)
			if walk(dep) {
				return true
			}
			stack = stack[:len(stack)-1]
		}
		return false
	}

	if walk(start) {
		return stack
	}
	return nil
}

// valueRef returns the declared type a member embeds by value.
func valueRef(t decl.Type) (string, bool) {
	switch t := t.(type) {
	case decl.Named:
		return t.Name, true
	case decl.Array:
		return valueRef(t.Elem)
	default:
		return "", false
	}
}
