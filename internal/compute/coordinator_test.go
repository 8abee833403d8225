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

package compute

import (
	"context"
	"errors"
	"testing"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLifecycleBackend serves a single instance and records every
// lifecycle action dispatched to it.
type fakeLifecycleBackend struct {
	instance  core.Instance
	getErr    error
	actionErr map[core.InstanceActionActionEnum]error
	actions   []core.InstanceActionActionEnum
}

func (f *fakeLifecycleBackend) GetInstance(ctx context.Context, instanceID string) (core.Instance, error) {
	if f.getErr != nil {
		return core.Instance{}, f.getErr
	}
	return f.instance, nil
}

func (f *fakeLifecycleBackend) InstanceAction(ctx context.Context, instanceID string, action core.InstanceActionActionEnum) error {
	if err := f.actionErr[action]; err != nil {
		return err
	}
	f.actions = append(f.actions, action)
	return nil
}

func backendInState(state core.InstanceLifecycleStateEnum) *fakeLifecycleBackend {
	return &fakeLifecycleBackend{
		instance: core.Instance{
			Id:             common.String("ocid1.instance.oc1.iad.abc123"),
			DisplayName:    common.String("web-1"),
			LifecycleState: state,
		},
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"START", ActionStart, false},
		{"start", ActionStart, false},
		{"Start", ActionStart, false},
		{"stop", ActionStop, false},
		{"ReSeT", ActionReset, false},
		{"LAUNCH", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if tt.wantErr {
				var invalid *InvalidActionError
				require.ErrorAs(t, err, &invalid)
				assert.Contains(t, err.Error(), "START, STOP, RESET")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegionFromOCID(t *testing.T) {
	region, err := RegionFromOCID("ocid1.instance.oc1.iad.xyz")
	require.NoError(t, err)
	assert.Equal(t, "iad", region)

	_, err = RegionFromOCID("ocid1.instance.oc1")
	var invalid *InvalidOCIDError
	require.ErrorAs(t, err, &invalid)
}

func TestExecute_StateTable(t *testing.T) {
	tests := []struct {
		name        string
		state       core.InstanceLifecycleStateEnum
		action      Action
		wantActions []core.InstanceActionActionEnum
		wantStatus  string
	}{
		{
			name:        "stopped start dispatches start",
			state:       core.InstanceLifecycleStateStopped,
			action:      ActionStart,
			wantActions: []core.InstanceActionActionEnum{core.InstanceActionActionStart},
			wantStatus:  StatusInitiated,
		},
		{
			name:        "stopped stop is a no-op",
			state:       core.InstanceLifecycleStateStopped,
			action:      ActionStop,
			wantActions: nil,
			wantStatus:  StatusNoAction,
		},
		{
			name:        "stopped reset dispatches start only",
			state:       core.InstanceLifecycleStateStopped,
			action:      ActionReset,
			wantActions: []core.InstanceActionActionEnum{core.InstanceActionActionStart},
			wantStatus:  StatusInitiated,
		},
		{
			name:        "running start is a no-op",
			state:       core.InstanceLifecycleStateRunning,
			action:      ActionStart,
			wantActions: nil,
			wantStatus:  StatusNoAction,
		},
		{
			name:        "running stop dispatches stop",
			state:       core.InstanceLifecycleStateRunning,
			action:      ActionStop,
			wantActions: []core.InstanceActionActionEnum{core.InstanceActionActionStop},
			wantStatus:  StatusInitiated,
		},
		{
			name:   "running reset dispatches stop then start",
			state:  core.InstanceLifecycleStateRunning,
			action: ActionReset,
			wantActions: []core.InstanceActionActionEnum{
				core.InstanceActionActionStop,
				core.InstanceActionActionStart,
			},
			wantStatus: StatusInitiated,
		},
		{
			name:        "transitional start is a no-op",
			state:       core.InstanceLifecycleStateStarting,
			action:      ActionStart,
			wantActions: nil,
			wantStatus:  StatusNoAction,
		},
		{
			name:        "transitional stop is a no-op",
			state:       core.InstanceLifecycleStateStopping,
			action:      ActionStop,
			wantActions: nil,
			wantStatus:  StatusNoAction,
		},
		{
			name:        "transitional reset cannot reset",
			state:       core.InstanceLifecycleStateProvisioning,
			action:      ActionReset,
			wantActions: nil,
			wantStatus:  StatusCannotReset,
		},
		{
			name:        "terminated reset cannot reset",
			state:       core.InstanceLifecycleStateTerminated,
			action:      ActionReset,
			wantActions: nil,
			wantStatus:  StatusCannotReset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := backendInState(tt.state)
			coordinator := NewCoordinator(backend)

			result, err := coordinator.Execute(context.Background(), "ocid1.instance.oc1.iad.abc123", tt.action)
			require.NoError(t, err)

			assert.Equal(t, tt.wantActions, backend.actions)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, string(tt.state), result.PreviousState)
			assert.Equal(t, string(tt.action), result.ActionRequested)
			assert.Equal(t, "web-1", result.InstanceName)
			assert.Equal(t, "ocid1.instance.oc1.iad.abc123", result.InstanceID)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestExecute_NoActionMessageCarriesState(t *testing.T) {
	backend := backendInState(core.InstanceLifecycleStateRunning)
	coordinator := NewCoordinator(backend)

	result, err := coordinator.Execute(context.Background(), "ocid1.instance.oc1.iad.abc123", ActionStart)
	require.NoError(t, err)
	assert.Equal(t, "Instance is already in state: RUNNING", result.Message)
}

func TestExecute_GetInstanceFails(t *testing.T) {
	backend := &fakeLifecycleBackend{getErr: errors.New("service unavailable")}
	coordinator := NewCoordinator(backend)

	_, err := coordinator.Execute(context.Background(), "ocid1.instance.oc1.iad.abc123", ActionStart)
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Contains(t, err.Error(), "service unavailable")
	assert.Empty(t, backend.actions)
}

// A RESET whose STOP is accepted but whose START fails reports total
// failure. The accepted STOP is not rolled back.
func TestExecute_ResetPartialFailureIsTotalFailure(t *testing.T) {
	backend := backendInState(core.InstanceLifecycleStateRunning)
	backend.actionErr = map[core.InstanceActionActionEnum]error{
		core.InstanceActionActionStart: errors.New("start rejected"),
	}
	coordinator := NewCoordinator(backend)

	_, err := coordinator.Execute(context.Background(), "ocid1.instance.oc1.iad.abc123", ActionReset)
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)

	// The STOP went through before the START failed.
	assert.Equal(t, []core.InstanceActionActionEnum{core.InstanceActionActionStop}, backend.actions)
}
