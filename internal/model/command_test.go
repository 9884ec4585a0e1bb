package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCommandJSONRoundTrip(t *testing.T) {
	params, err := json.Marshal(DeployParams{
		Assets:        []string{"0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
		Balances:      []string{"100000000"},
		Weights:       []uint64{1},
		Amplification: 1000000000000000000,
		OnlyLocal:     true,
	})
	if err != nil {
		t.Fatalf("marshal params failed: %v", err)
	}

	original := Command{
		Seq:       42,
		Op:        OpDeploy,
		Sender:    "0x1000000000000000000000000000000000000001",
		Timestamp: 1700000000,
		Params:    params,
	}

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Command
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
}

func TestLifecycleEventJSONRoundTrip(t *testing.T) {
	original := LifecycleEvent{
		Seq:          7,
		Op:           OpFinishSetup,
		VaultAddress: "0x3000000000000000000000000000000000000003",
		Sender:       "0x1000000000000000000000000000000000000001",
		Status:       StatusRejected,
		Error:        "setup already finished",
		Timestamp:    1700000000,
		AppliedAt:    "2024-01-01T00:00:00Z",
	}

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded LifecycleEvent
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
}
