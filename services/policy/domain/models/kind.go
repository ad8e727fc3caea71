package models

import "strings"

// Kind describes one policy document type. Each store has at most one
// document per kind.
type Kind struct {
	Name  string // stored in store_policies.kind and carried by events
	Label string // singular, capitalized, for client messages
	Route string
	Field string // JSON field holding the document body
}

var (
	Contact  = Kind{Name: "contact", Label: "Contact info", Route: "/store-contact-info", Field: "contactInfo"}
	Privacy  = Kind{Name: "privacy", Label: "Privacy policy", Route: "/store-privacy-policy", Field: "privacyPolicy"}
	Shipping = Kind{Name: "shipping", Label: "Shipping policy", Route: "/store-shipping-policy", Field: "shippingPolicy"}
	Return   = Kind{Name: "return", Label: "Return policy", Route: "/store-return-policy", Field: "returnPolicy"}
	Terms    = Kind{Name: "terms", Label: "Terms of service", Route: "/store-terms-policy", Field: "termsOfService"}
)

// Kinds lists every policy kind.
var Kinds = []Kind{Contact, Privacy, Shipping, Return, Terms}

// KindByName looks a kind up by its Name.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// CacheScope is the list cache scope under which a store's document is kept.
func (k Kind) CacheScope() string {
	return "policy-" + k.Name
}

// Lower returns the label for use mid-sentence.
func (k Kind) Lower() string {
	return strings.ToLower(k.Label)
}
