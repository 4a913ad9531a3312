package database

import "context"

// memoryDriver backs memory:// targets. Data lives in the memory repository;
// the driver only participates in the readiness lifecycle.
type memoryDriver struct{}

func (memoryDriver) Connect(context.Context) error { return nil }
func (memoryDriver) Ping(context.Context) error    { return nil }
func (memoryDriver) Close(context.Context) error   { return nil }
