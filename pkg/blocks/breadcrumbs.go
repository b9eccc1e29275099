package blocks

// breadcrumbs is the stack of currently open block names, oldest first.
// Only openers push and only closers pop; names are never compared.
type breadcrumbs struct {
	names []BlockName
}

func (b *breadcrumbs) push(name BlockName) {
	b.names = append(b.names, name)
}

// pop drops the innermost open block. Popping an empty stack does nothing.
func (b *breadcrumbs) pop() {
	if len(b.names) > 0 {
		b.names = b.names[:len(b.names)-1]
	}
}

func (b *breadcrumbs) depth() int {
	return len(b.names)
}

func (b *breadcrumbs) snapshot() []BlockName {
	if len(b.names) == 0 {
		return nil
	}
	out := make([]BlockName, len(b.names))
	copy(out, b.names)
	return out
}
