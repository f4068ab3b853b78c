package identity

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/domain"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
)

// DeviceIDHeader carries the client-declared identifier in declared mode.
const DeviceIDHeader = "X-Device-ID"

type deviceResolver struct{}

// NewDeviceResolver returns the declared-identity variant: the client sends
// an opaque device UUID and it is trusted as-is. There is no possession
// proof, so this mode is only suitable for anonymous deployments.
func NewDeviceResolver() ports.IdentityResolver {
	return deviceResolver{}
}

func (deviceResolver) Resolve(r *http.Request) (string, error) {
	deviceID := r.Header.Get(DeviceIDHeader)
	if !isCanonicalUUIDv4(deviceID) {
		return "", domain.ErrInvalidIdentity
	}
	return deviceID, nil
}

// isCanonicalUUIDv4 accepts only the 36-character hyphenated form, version 4,
// RFC 4122 variant. uuid.Parse alone would also accept URNs and braced forms.
func isCanonicalUUIDv4(s string) bool {
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	return err == nil && u.Version() == 4 && u.Variant() == uuid.RFC4122
}
