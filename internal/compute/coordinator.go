// Copyright 2025 The compute-mcp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package compute holds the domain logic of the server: the compartment
// directory, the instance lifecycle action coordinator, and the JSON
// projections of OCI entities. Everything here is a thin layer over the
// backend interfaces; no state is kept between invocations.
package compute

import (
	"context"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/core"
)

// Action is a requested lifecycle transition.
type Action string

const (
	ActionStart Action = "START"
	ActionStop  Action = "STOP"
	ActionReset Action = "RESET"
)

// Result statuses reported by the coordinator.
const (
	StatusInitiated   = "Action initiated"
	StatusNoAction    = "No action needed"
	StatusCannotReset = "Cannot reset"
)

// ParseAction normalizes a case-insensitive action string.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToUpper(s)); a {
	case ActionStart, ActionStop, ActionReset:
		return a, nil
	default:
		return "", &InvalidActionError{Action: string(a)}
	}
}

// RegionFromOCID extracts the region code embedded in an instance OCID
// (the fourth dot-delimited segment, e.g. "iad" in
// "ocid1.instance.oc1.iad.xyz").
func RegionFromOCID(id string) (string, error) {
	parts := strings.Split(id, ".")
	if len(parts) < 4 {
		return "", &InvalidOCIDError{ID: id}
	}
	return parts[3], nil
}

// LifecycleBackend is the capability set the coordinator needs from the
// compute service. InstanceAction is fire-and-forget: it returns once
// the request is accepted, not when the transition completes.
type LifecycleBackend interface {
	GetInstance(ctx context.Context, instanceID string) (core.Instance, error)
	InstanceAction(ctx context.Context, instanceID string, action core.InstanceActionActionEnum) error
}

// ActionResult is the record returned to the caller for every lifecycle
// action request. It is never persisted.
type ActionResult struct {
	InstanceID      string `json:"instance_id"`
	InstanceName    string `json:"instance_name"`
	ActionRequested string `json:"action_requested"`
	PreviousState   string `json:"previous_state"`
	Status          string `json:"status"`
	Message         string `json:"message"`
}

// Coordinator decides which lifecycle transitions to dispatch for a
// requested action, based on the instance state observed immediately
// before the decision. State is always re-queried, never cached.
type Coordinator struct {
	backend LifecycleBackend
}

// NewCoordinator returns a coordinator over the given backend.
func NewCoordinator(backend LifecycleBackend) *Coordinator {
	return &Coordinator{backend: backend}
}

// Execute applies the requested action to the instance:
//
//	STOPPED + START  -> START
//	RUNNING + STOP   -> STOP
//	RUNNING + RESET  -> STOP then START
//	STOPPED + RESET  -> START
//
// START/STOP against an instance already where the action would put it
// (or in a transitional state) short-circuits to "No action needed"
// rather than relying on the backend's own idempotency, saving the
// round trip and giving the caller an informative message. RESET from a
// transitional state dispatches nothing and reports "Cannot reset".
//
// The RESET dispatch is sequential but does not wait for the STOP to
// complete before issuing the START; if the START fails after a
// successful STOP the whole call reports failure even though one
// transition was accepted.
func (c *Coordinator) Execute(ctx context.Context, instanceID string, action Action) (ActionResult, error) {
	instance, err := c.backend.GetInstance(ctx, instanceID)
	if err != nil {
		return ActionResult{}, &BackendError{Op: "get instance", Err: err}
	}

	state := string(instance.LifecycleState)
	result := ActionResult{
		InstanceID:      instanceID,
		InstanceName:    deref(instance.DisplayName),
		ActionRequested: string(action),
		PreviousState:   state,
	}

	switch action {
	case ActionStart:
		if state != string(core.InstanceLifecycleStateStopped) {
			result.Status = StatusNoAction
			result.Message = "Instance is already in state: " + state
			return result, nil
		}
		if err := c.backend.InstanceAction(ctx, instanceID, core.InstanceActionActionStart); err != nil {
			return ActionResult{}, &BackendError{Op: "start instance", Err: err}
		}
		result.Status = StatusInitiated
		result.Message = "Instance start initiated"

	case ActionStop:
		if state != string(core.InstanceLifecycleStateRunning) {
			result.Status = StatusNoAction
			result.Message = "Instance is already in state: " + state
			return result, nil
		}
		if err := c.backend.InstanceAction(ctx, instanceID, core.InstanceActionActionStop); err != nil {
			return ActionResult{}, &BackendError{Op: "stop instance", Err: err}
		}
		result.Status = StatusInitiated
		result.Message = "Instance stop initiated"

	case ActionReset:
		switch state {
		case string(core.InstanceLifecycleStateRunning):
			if err := c.backend.InstanceAction(ctx, instanceID, core.InstanceActionActionStop); err != nil {
				return ActionResult{}, &BackendError{Op: "stop instance", Err: err}
			}
			result.Message = "Instance reset initiated (stop then start)"
		case string(core.InstanceLifecycleStateStopped):
			result.Message = "Instance start initiated (was already stopped)"
		default:
			result.Status = StatusCannotReset
			result.Message = "Cannot reset instance in state: " + state
			return result, nil
		}
		if err := c.backend.InstanceAction(ctx, instanceID, core.InstanceActionActionStart); err != nil {
			return ActionResult{}, &BackendError{Op: "start instance", Err: err}
		}
		result.Status = StatusInitiated

	default:
		return ActionResult{}, &InvalidActionError{Action: string(action)}
	}

	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
