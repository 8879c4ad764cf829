package hsf

import "fmt"

type constError string

func (errStr constError) Error() string { return string(errStr) }

// ErrInvalidFillFactor may be returned from any of the New*Forest
// constructors.
const ErrInvalidFillFactor = constError("invalid fill factor")

func fillFactorError(minCapacity, maxCapacity Capacity) error {
	return fmt.Errorf(
		"%w: maxCapacity.FillFactor (%v) must exceed minCapacity.FillFactor (%v)",
		ErrInvalidFillFactor, maxCapacity.FillFactor, minCapacity.FillFactor)
}
