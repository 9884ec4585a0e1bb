package model

import "encoding/json"

// Lifecycle event outcomes.
const (
	StatusApplied  = "applied"
	StatusRejected = "rejected"
)

// LifecycleEvent is the journaled outcome of one applied or rejected command.
type LifecycleEvent struct {
	Seq          uint64 `json:"seq"`
	Op           string `json:"op"`
	VaultAddress string `json:"vault_address,omitempty"`
	Sender       string `json:"sender"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
	Timestamp    uint64 `json:"timestamp"`
	AppliedAt    string `json:"applied_at"`
}

// MarshalJSON ensures LifecycleEvent is encoded with stable field names.
func (e LifecycleEvent) MarshalJSON() ([]byte, error) {
	type Alias LifecycleEvent
	return json.Marshal(Alias(e))
}

// UnmarshalJSON decodes a LifecycleEvent from JSON.
func (e *LifecycleEvent) UnmarshalJSON(data []byte) error {
	type Alias LifecycleEvent
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = LifecycleEvent(a)
	return nil
}
