package rdm

import "errors"

// Sentinel errors for configuration and codec-level failures. These are
// distinct from NACK reasons: a NACK is a valid RDM response
// value, while these errors mean a request or configuration could not be
// turned into one at all.
var (
	// ErrMalformedUID indicates a UID string did not parse as "mmmm:dddddddd".
	ErrMalformedUID = errors.New("malformed UID")

	// ErrParamDataTooLarge indicates param data exceeds the 231-byte RDM
	// payload ceiling before a request was built.
	ErrParamDataTooLarge = errors.New("parameter data exceeds 231 bytes")

	// ErrStringTooLong indicates a configured string exceeds
	// MaxRDMStringLength and could never fit its wire field.
	ErrStringTooLong = errors.New("string exceeds max RDM string length")

	// ErrNoSubDevices indicates a DimmerRootDevice was constructed without
	// any sub-devices.
	ErrNoSubDevices = errors.New("no sub-devices configured")

	// ErrTooManySubDevices indicates a sub-device count beyond
	// MaxSubDeviceNumber was requested.
	ErrTooManySubDevices = errors.New("sub-device count exceeds MaxSubDeviceNumber")
)
