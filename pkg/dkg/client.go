// Package dkg describes the knowledge-graph client the gateway plugin talks to
// and ships an HTTP implementation backed by a DKG node.
//
// The client is a capability handed to the application at setup time; tests and
// embedding hosts provide their own implementation of Client.
package dkg

import (
	"context"
)

type Client interface {
	Asset() AssetService
	Graph() GraphService
}

type AssetService interface {
	// Create publishes content as a new Knowledge Asset and returns its UAL.
	Create(ctx context.Context, content any, opts CreateOptions) (*CreateResult, error)
	// Get resolves a Knowledge Asset by UAL.
	Get(ctx context.Context, ual string) (Asset, error)
}

type GraphService interface {
	Query(ctx context.Context, query string, mode QueryMode) (any, error)
}

type CreateOptions struct {
	// EpochsNum is the retention duration in the node's epoch units.
	EpochsNum int  `json:"epochsNum"`
	Immutable bool `json:"immutable"`
}

type CreateResult struct {
	UAL string `json:"UAL"`
}

// Asset is the node's raw answer for a get operation.
type Asset map[string]any

// Public returns the public assertion of the asset when the node included one.
func (a Asset) Public() (any, bool) {
	if a == nil {
		return nil, false
	}
	if v, ok := a["public"]; ok && v != nil {
		return v, true
	}
	if assertion, ok := a["assertion"].(map[string]any); ok {
		if v, ok := assertion["public"]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

type QueryMode string

const (
	QuerySelect QueryMode = "SELECT"
)

// Observer is notified around every node operation. The returned func is
// called once with the operation's outcome.
type Observer interface {
	ObserveRequest(operation string) func(err error)
}
