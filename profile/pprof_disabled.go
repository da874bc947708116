//go:build !pprof

package profile

// start returns a no-op profiler when built without the pprof build tag.
func start(string, string, bool) interface{ Stop() } {
	return ignore{}
}
