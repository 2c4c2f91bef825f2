package inventory

// Item is a single stocked unit as reported by /stocking/list/.
type Item struct {
	UPC   string `json:"upc"`
	Shelf string `json:"shelf"`
	Hash  string `json:"hash"`
}

// ItemList is a page of stocked items. Count is the server-side total, which
// can exceed len(Items).
type ItemList struct {
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

// ItemCount mirrors /stocking/count/ for a UPC.
type ItemCount struct {
	Count   int            `json:"count"`
	Shelves map[string]int `json:"shelves"`
}

// SubShelf is a child location of a Shelf.
type SubShelf struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Shelf describes a storage location and its direct children.
type Shelf struct {
	Name       string     `json:"name"`
	Count      int        `json:"count"`
	Subshelves []SubShelf `json:"subshelves"`
}

// ByShelf groups the page's items by shelf name, preserving order of first
// appearance.
func (l ItemList) ByShelf() ([]string, map[string][]Item) {
	groups := make(map[string][]Item)
	var order []string
	for _, item := range l.Items {
		if _, seen := groups[item.Shelf]; !seen {
			order = append(order, item.Shelf)
		}
		groups[item.Shelf] = append(groups[item.Shelf], item)
	}
	return order, groups
}

// HasMore reports whether the server holds items past this page.
func (l ItemList) HasMore(offset int) bool {
	return offset+len(l.Items) < l.Count
}

// SubshelfTotal sums the counts of the shelf's children.
func (s Shelf) SubshelfTotal() int {
	total := 0
	for _, sub := range s.Subshelves {
		total += sub.Count
	}
	return total
}
