package sales

// Storage is the main interface for our sales storage layer.
// Sales are append-only: there is no update or delete.
type Storage interface {
	Append(sale Sale) error
	Read(id string) (Sale, error)
	GetAll() ([]Sale, error)
}

// LocalStorage provides an in-memory implementation for storing sales.
// It keeps insertion order. It is not safe for concurrent use on its own.
type LocalStorage struct {
	sales []Sale
	index map[string]int
}

// NewLocalStorage instantiates a new, empty LocalStorage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		index: map[string]int{},
	}
}

// Append stores a sale at the end of the list.
// Returns ErrEmptyID if the sale has an empty ID.
func (l *LocalStorage) Append(sale Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}
	l.index[sale.ID] = len(l.sales)
	l.sales = append(l.sales, sale)
	return nil
}

// Read retrieves a sale by ID.
// Returns ErrNotFound if the sale is not found.
func (l *LocalStorage) Read(id string) (Sale, error) {
	i, ok := l.index[id]
	if !ok {
		return Sale{}, ErrNotFound
	}
	return l.sales[i], nil
}

// GetAll returns a copy of every stored sale in insertion order.
func (l *LocalStorage) GetAll() ([]Sale, error) {
	out := make([]Sale, len(l.sales))
	copy(out, l.sales)
	return out, nil
}
