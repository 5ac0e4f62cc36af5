package snmp

import "errors"

var (
	// ErrDeviceUnreachable is the transport-level failure class: the device gave
	// no response at all. Callers classify the device Offline on this error.
	ErrDeviceUnreachable = errors.New("device unreachable")

	// ErrNoSuchObject marks a single unavailable field; the collection as a
	// whole continues.
	ErrNoSuchObject = errors.New("no such object")

	// ErrEndOfWalk marks the end of the MIB view during a table walk.
	ErrEndOfWalk = errors.New("end of MIB view")

	errRequestFailed = errors.New("snmp request failed")
	errSNMPStatus    = errors.New("snmp error status in response")
	errEmptyResponse = errors.New("empty snmp response")
)
