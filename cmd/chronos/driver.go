package main

import (
	"runtime"

	"github.com/colorfulnotion/chronos/chronos"
)

// profile is the enabled flag passed to every instrumented call.
var profile = true

// caller returns the fully qualified name of the function that called it.
func caller() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}
	return runtime.FuncForPC(pc).Name()
}

func fibb(value int64) int64 {
	profiler := chronos.Instance()
	name, id := caller(), profiler.ID()
	profiler.Start(name, id, profile)

	if value < 2 {
		profiler.Stop(name, id, profile)
		return value
	}
	profiler.Stop(name, id, profile)
	return fibb(value-1) + fibb(value-2)
}

func counter(count int64) int64 {
	profiler := chronos.Instance()
	name, id := caller(), profiler.ID()
	defer profiler.Track(name, id, profile)()

	value := int64(1)
	for i := int64(1); i < count; i++ {
		value *= i
	}
	return value
}

func factorial(val int64) int64 {
	profiler := chronos.Instance()
	name, id := caller(), profiler.ID()
	profiler.Start(name, id, profile)

	if val <= 1 {
		profiler.Stop(name, id, profile)
		return 1
	}
	profiler.Stop(name, id, profile)
	return val * factorial(val-1)
}
