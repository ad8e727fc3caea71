package events

import "time"

// TopicPolicySaved is published whenever a policy document is created or
// its content replaced.
const TopicPolicySaved = "policy.saved"

// PolicyEvent is the payload of TopicPolicySaved.
type PolicyEvent struct {
	Kind       string    `json:"kind"`
	PolicyID   string    `json:"policyId"`
	StoreID    string    `json:"storeId"`
	Created    bool      `json:"created"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (e PolicyEvent) Store() string { return e.StoreID }
