package models

// Permission is one entry of a role's flat ACL.
type Permission string

const (
	ProductsRead    Permission = "products.read"
	ProductsWrite   Permission = "products.write"
	OrdersRead      Permission = "orders.read"
	OrdersWrite     Permission = "orders.write"
	CustomersRead   Permission = "customers.read"
	CustomersWrite  Permission = "customers.write"
	DiscountsManage Permission = "discounts.manage"
	SettingsManage  Permission = "settings.manage"
	RolesManage     Permission = "roles.manage"
	AnalyticsRead   Permission = "analytics.read"
)

// Catalog lists every permission a role may carry.
var Catalog = []Permission{
	ProductsRead, ProductsWrite,
	OrdersRead, OrdersWrite,
	CustomersRead, CustomersWrite,
	DiscountsManage, SettingsManage, RolesManage,
	AnalyticsRead,
}

var known = func() map[Permission]bool {
	m := make(map[Permission]bool, len(Catalog))
	for _, p := range Catalog {
		m[p] = true
	}
	return m
}()

// IsKnown reports whether p is in the catalog.
func IsKnown(p Permission) bool { return known[p] }

// ParsePermissions converts raw strings into permissions, collapsing
// duplicates and keeping first-seen order. Unknown entries are returned
// separately, in input order.
func ParsePermissions(raw []string) (perms []Permission, unknown []string) {
	perms = make([]Permission, 0, len(raw))
	seen := make(map[Permission]bool, len(raw))
	for _, s := range raw {
		p := Permission(s)
		if !IsKnown(p) {
			unknown = append(unknown, s)
			continue
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		perms = append(perms, p)
	}
	return perms, unknown
}
