// Package sysy is the runtime that compiled SysY programs run against.
//
// A Runtime bundles the input cursor, the buffered output sink and the
// line-keyed timer registry of a single program run. Run brackets the
// program's main function with initialization and finalization:
//
//	code, err := sysy.Run(func(rt *sysy.Runtime) int32 {
//		n := rt.GetInt()
//		rt.StartTime(3)
//		rt.PutInt(n * n)
//		rt.StopTime(5)
//		rt.PutCh('\n')
//		return 0
//	}, sysy.WithPairing(profiler.PairInnermost))
//
// Program output goes to stdout; the timing report and log messages go to
// stderr when the runtime closes.
package sysy
