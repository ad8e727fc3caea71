package models

// SeedOutcome reports a seeding run. Shadowed lists the system role names
// the store already uses for a custom role, so those system roles were not
// created.
type SeedOutcome struct {
	Inserted int
	Shadowed []string
}

// DefaultRoles returns the system roles every store starts with.
func DefaultRoles(storeID string) []*Role {
	all := append([]Permission(nil), Catalog...)
	admin := make([]Permission, 0, len(Catalog))
	for _, p := range Catalog {
		if p != RolesManage {
			admin = append(admin, p)
		}
	}

	roles := []*Role{
		NewRole(storeID, "Owner", "Full access to the store", all),
		NewRole(storeID, "Admin", "Manages the store except staff roles", admin),
		NewRole(storeID, "Staff", "Handles products, orders and customers day to day",
			[]Permission{ProductsRead, ProductsWrite, OrdersRead, OrdersWrite, CustomersRead}),
		NewRole(storeID, "Viewer", "Read-only access",
			[]Permission{ProductsRead, OrdersRead, CustomersRead, AnalyticsRead}),
	}
	for _, r := range roles {
		r.IsSystem = true
	}
	return roles
}
