package cloud

import "encoding/json"

// RawSnapshot is one un-normalized reading as the farm service reports it.
// Field names vary across firmware versions, so it stays a loose map until
// the normalizer coalesces it.
type RawSnapshot map[string]interface{}

// snapshotEnvelope wraps the latest-snapshot response. A null or absent data
// field means the device is offline.
type snapshotEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type historyEnvelope struct {
	Data []RawSnapshot `json:"data"`
}

// ControlResult is the farm service's answer to a relay command.
type ControlResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type controlRequest struct {
	Command string `json:"command"`
}
