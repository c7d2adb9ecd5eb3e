package domain

// CartItem mirrors one line of the backend cart. The backend has shipped the
// item identifier under several names over time; EffectiveID resolves them.
type CartItem struct {
	ID         string  `json:"id,omitempty"`
	ItemID     string  `json:"itemId,omitempty"`
	MongoID    string  `json:"_id,omitempty"`
	TemplateID string  `json:"templateId,omitempty"`
	DesignID   string  `json:"designId,omitempty"`
	ItemType   string  `json:"itemType,omitempty"`
	Title      string  `json:"title,omitempty"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   int     `json:"quantity"`
	ItemTotal  float64 `json:"itemTotal"`
	ImageURL   string  `json:"imageUrl,omitempty"`
}

// EffectiveID resolves the aliased identifier fields: id, then itemId, then _id.
func (i CartItem) EffectiveID() string {
	switch {
	case i.ID != "":
		return i.ID
	case i.ItemID != "":
		return i.ItemID
	default:
		return i.MongoID
	}
}

// EffectiveLineTotal prefers the precomputed line total when it is positive,
// otherwise unit price times quantity.
func (i CartItem) EffectiveLineTotal() float64 {
	if i.ItemTotal > 0 {
		return i.ItemTotal
	}
	return i.UnitPrice * float64(i.Quantity)
}

// Cart is the backend cart plus its optional server-computed subtotal.
// When the backend provides a subtotal it is authoritative.
type Cart struct {
	Items    []CartItem `json:"items"`
	Subtotal *float64   `json:"subtotal,omitempty"`
}

func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }

// EffectiveSubtotal returns the server subtotal when present, otherwise the
// sum of effective line totals.
func (c Cart) EffectiveSubtotal() float64 {
	if c.Subtotal != nil {
		return *c.Subtotal
	}
	var sum float64
	for _, it := range c.Items {
		sum += it.EffectiveLineTotal()
	}
	return sum
}
