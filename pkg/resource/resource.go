// Package resource defines the printable instance view used by quicklaunch.
package resource

import "time"

// Resource is a flattened, provider-neutral view of one instance.
// It is built for output only; nothing is stored.
type Resource struct {
	ID           string            `json:"id"`            // Instance identifier (e.g., "i-e366c3eb")
	Name         string            `json:"name"`          // Value of the Name tag, if any
	Region       string            `json:"region"`        // Region the listing came from
	Zone         string            `json:"zone"`          // Availability zone
	InstanceType string            `json:"instance_type"` // e.g. "t1.micro"
	ImageID      string            `json:"image_id"`      // AMI the instance was launched from
	Status       string            `json:"status"`        // Current state (e.g., "running")
	Labels       map[string]string `json:"labels"`        // Tags as reported by the provider
	LaunchedAt   time.Time         `json:"launched_at"`
}
