package models

// Order is the list order of a kind.
type Order int

const (
	NewestFirst   Order = iota // created_at DESC
	NameAscending              // name ASC, case-insensitive
)

// Kind describes one member of the tag family. Every kind stores the same
// record shape in its own table.
type Kind struct {
	Name    string // stable identifier used in events and cache keys
	Label   string // singular, capitalized, for client messages
	Plural  string
	Route   string
	Table   string
	MaxName int
	Order   Order
}

var (
	TagKind          = Kind{Name: "tag", Label: "Tag", Plural: "Tags", Route: "/tags", Table: "tags", MaxName: 50, Order: NewestFirst}
	ProductTag       = Kind{Name: "product-tag", Label: "Product tag", Plural: "Product tags", Route: "/product-tags", Table: "product_tags", MaxName: 50, Order: NewestFirst}
	Vendor           = Kind{Name: "vendor", Label: "Vendor", Plural: "Vendors", Route: "/vendors", Table: "vendors", MaxName: 100, Order: NameAscending}
	ProductType      = Kind{Name: "product-type", Label: "Product type", Plural: "Product types", Route: "/product-types", Table: "product_types", MaxName: 100, Order: NewestFirst}
	PurchaseOrderTag = Kind{Name: "purchase-order-tag", Label: "Purchase order tag", Plural: "Purchase order tags", Route: "/purchase-order-tags", Table: "purchase_order_tags", MaxName: 50, Order: NewestFirst}
	TransferTag      = Kind{Name: "transfer-tag", Label: "Transfer tag", Plural: "Transfer tags", Route: "/transfer-tags", Table: "transfer_tags", MaxName: 50, Order: NewestFirst}
)

// Kinds lists every tag-family kind.
var Kinds = []Kind{TagKind, ProductTag, Vendor, ProductType, PurchaseOrderTag, TransferTag}

// KindByName looks a kind up by its Name.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
