package input

import "context"

// Permission is the orientation access state
type Permission int32

const (
	PermissionUnrequested Permission = iota
	PermissionPending
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionUnrequested:
		return "unrequested"
	case PermissionPending:
		return "pending"
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Requester asks the host platform for orientation access
type Requester interface {
	RequestOrientation(ctx context.Context) (bool, error)
}

// RequesterFunc adapts a function to Requester
type RequesterFunc func(ctx context.Context) (bool, error)

// RequestOrientation calls f
func (f RequesterFunc) RequestOrientation(ctx context.Context) (bool, error) {
	return f(ctx)
}

// AlwaysGrant is a Requester for hosts without a permission gate
var AlwaysGrant = RequesterFunc(func(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return true, nil
})
