package domain

type ShoppingList struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Items []int64 `json:"items"`
}

// Clone returns a copy that does not share the items slice.
func (l ShoppingList) Clone() ShoppingList {
	items := make([]int64, len(l.Items))
	copy(items, l.Items)
	l.Items = items
	return l
}
