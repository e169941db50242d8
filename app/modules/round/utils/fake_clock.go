package roundutil

import "time"

// FakeClock is a fake implementation of the Clock interface.
type FakeClock struct {
	NowFn    func() time.Time
	NowUTCFn func() time.Time
}

func (f *FakeClock) Now() time.Time {
	if f.NowFn != nil {
		return f.NowFn()
	}
	return time.Now()
}

func (f *FakeClock) NowUTC() time.Time {
	if f.NowUTCFn != nil {
		return f.NowUTCFn()
	}
	return time.Now().UTC()
}
