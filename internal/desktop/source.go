package desktop

// Source maps a desktop index to its identifier.
type Source interface {
	// Name is used in logs and CLI output.
	Name() string
	// Lookup returns the identifier of the desktop at index.
	Lookup(index int) (ID, error)
	// List returns every desktop in display order.
	List() ([]ID, error)
}
