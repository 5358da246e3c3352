package usecases

import "time"

// StubSleep swaps the inter-attempt wait so tests can observe requested
// durations without actually sleeping.
func (u *MintUsecase) StubSleep(fn func(time.Duration)) {
	u.sleep = fn
}
