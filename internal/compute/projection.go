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
	"time"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/identity"
)

// CompartmentSummary is the JSON shape returned by list_compartments.
type CompartmentSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	LifecycleState string `json:"lifecycle_state"`
	TimeCreated    string `json:"time_created"`
}

// InstanceSummary is the JSON shape returned by list_compute_instances.
type InstanceSummary struct {
	ID                 string `json:"id"`
	DisplayName        string `json:"display_name"`
	LifecycleState     string `json:"lifecycle_state"`
	AvailabilityDomain string `json:"availability_domain"`
	Shape              string `json:"shape"`
	TimeCreated        string `json:"time_created"`
	CompartmentID      string `json:"compartment_id"`
}

// ShapeConfig is the flexible-shape sizing block of an instance detail.
type ShapeConfig struct {
	Ocpus       *float32 `json:"ocpus"`
	MemoryInGBs *float32 `json:"memory_in_gbs"`
}

// LaunchOptions is the boot configuration block of an instance detail.
type LaunchOptions struct {
	BootVolumeType string `json:"boot_volume_type"`
	Firmware       string `json:"firmware"`
	NetworkType    string `json:"network_type"`
}

// InstanceDetail is the JSON shape returned by get_compute_instance.
type InstanceDetail struct {
	ID                 string                 `json:"id"`
	DisplayName        string                 `json:"display_name"`
	LifecycleState     string                 `json:"lifecycle_state"`
	AvailabilityDomain string                 `json:"availability_domain"`
	Shape              string                 `json:"shape"`
	ShapeConfig        *ShapeConfig           `json:"shape_config"`
	TimeCreated        string                 `json:"time_created"`
	CompartmentID      string                 `json:"compartment_id"`
	Region             string                 `json:"region"`
	FaultDomain        string                 `json:"fault_domain"`
	ImageID            string                 `json:"image_id"`
	LaunchMode         string                 `json:"launch_mode"`
	LaunchOptions      *LaunchOptions         `json:"launch_options"`
	Metadata           map[string]string      `json:"metadata"`
	ExtendedMetadata   map[string]interface{} `json:"extended_metadata"`
}

// SummarizeCompartment projects an identity compartment to its summary
// shape.
func SummarizeCompartment(c identity.Compartment) CompartmentSummary {
	return CompartmentSummary{
		ID:             deref(c.Id),
		Name:           deref(c.Name),
		Description:    deref(c.Description),
		LifecycleState: string(c.LifecycleState),
		TimeCreated:    formatTime(c.TimeCreated),
	}
}

// SummarizeInstance projects a compute instance to its summary shape.
func SummarizeInstance(i core.Instance) InstanceSummary {
	return InstanceSummary{
		ID:                 deref(i.Id),
		DisplayName:        deref(i.DisplayName),
		LifecycleState:     string(i.LifecycleState),
		AvailabilityDomain: deref(i.AvailabilityDomain),
		Shape:              deref(i.Shape),
		TimeCreated:        formatTime(i.TimeCreated),
		CompartmentID:      deref(i.CompartmentId),
	}
}

// DetailInstance projects a compute instance to its full detail shape.
// Optional blocks (shape config, launch options) stay null when the
// backend omits them.
func DetailInstance(i core.Instance) InstanceDetail {
	detail := InstanceDetail{
		ID:                 deref(i.Id),
		DisplayName:        deref(i.DisplayName),
		LifecycleState:     string(i.LifecycleState),
		AvailabilityDomain: deref(i.AvailabilityDomain),
		Shape:              deref(i.Shape),
		TimeCreated:        formatTime(i.TimeCreated),
		CompartmentID:      deref(i.CompartmentId),
		Region:             deref(i.Region),
		FaultDomain:        deref(i.FaultDomain),
		ImageID:            deref(i.ImageId),
		LaunchMode:         string(i.LaunchMode),
		Metadata:           i.Metadata,
		ExtendedMetadata:   i.ExtendedMetadata,
	}

	if i.ShapeConfig != nil {
		detail.ShapeConfig = &ShapeConfig{
			Ocpus:       i.ShapeConfig.Ocpus,
			MemoryInGBs: i.ShapeConfig.MemoryInGBs,
		}
	}

	if i.LaunchOptions != nil {
		detail.LaunchOptions = &LaunchOptions{
			BootVolumeType: string(i.LaunchOptions.BootVolumeType),
			Firmware:       string(i.LaunchOptions.Firmware),
			NetworkType:    string(i.LaunchOptions.NetworkType),
		}
	}

	return detail
}

func formatTime(t *common.SDKTime) string {
	if t == nil {
		return ""
	}
	return t.Time.UTC().Format(time.RFC3339)
}
