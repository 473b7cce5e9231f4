// Command sylib builds the runtime as a C archive for linking with compiled
// programs:
//
//	go build -buildmode=c-archive -o libsylib.a ./cmd/sylib
//	cc prog.s libsylib.a -lpthread -o prog
//
// The program includes sylib.h. A C constructor in hooks.c runs
// before_main ahead of the program's main and registers after_main with
// atexit. Calling into Go from the constructor waits for the archive's Go
// runtime to finish initializing, so the hooks are in place even for
// programs that never call the library.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"os"
	"unsafe"

	"gosylib/pkg/emit"
	"gosylib/pkg/profiler"
	"gosylib/pkg/sysy"
)

// rt is process-wide because the C entry points carry no context.
var rt *sysy.Runtime

// fatal finalizes explicitly because os.Exit skips atexit handlers.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "sylib: %v\n", err)
	_ = rt.Close()
	os.Exit(sysy.ExitFailure)
}

func check(err error) {
	if err != nil {
		fatal(err)
	}
}

//export before_main
func before_main() {
	if rt == nil {
		rt = sysy.New(sysy.WithPairing(profiler.PairInnermost))
	}
}

//export after_main
func after_main() {
	if rt != nil {
		check(rt.Close())
	}
}

//export getint
func getint() C.int {
	v, err := rt.Input().ReadInt()
	check(err)
	return C.int(v)
}

//export getch
func getch() C.int {
	c, err := rt.Input().ReadChar()
	check(err)
	return C.int(c)
}

//export getfloat
func getfloat() C.float {
	v, err := rt.Input().ReadFloat()
	check(err)
	return C.float(v)
}

// The C entry points cannot see the capacity behind a raw pointer, so array
// reads trust the caller to provide room for the count that is read.

//export getarray
func getarray(a *C.int) C.int {
	n, err := rt.Input().ReadCount()
	check(err)
	_, err = rt.Input().ReadInts(cSlice((*int32)(unsafe.Pointer(a)), n))
	check(err)
	return C.int(n)
}

//export getfarray
func getfarray(a *C.float) C.int {
	n, err := rt.Input().ReadCount()
	check(err)
	_, err = rt.Input().ReadFloats(cSlice((*float32)(unsafe.Pointer(a)), n))
	check(err)
	return C.int(n)
}

//export putint
func putint(a C.int) {
	check(rt.Output().WriteInt(int32(a)))
}

//export putch
func putch(a C.int) {
	check(rt.Output().WriteChar(int32(a)))
}

//export putfloat
func putfloat(a C.float) {
	check(rt.Output().WriteFloat(float32(a)))
}

//export putarray
func putarray(n C.int, a *C.int) {
	check(rt.Output().WriteIntArray(int(n), cSlice((*int32)(unsafe.Pointer(a)), int(n))))
}

//export putfarray
func putfarray(n C.int, a *C.float) {
	check(rt.Output().WriteFloatArray(int(n), cSlice((*float32)(unsafe.Pointer(a)), int(n))))
}

//export _sysy_starttime
func _sysy_starttime(lineno C.int) {
	rt.Profiler().Start(int(lineno))
}

//export _sysy_stoptime
func _sysy_stoptime(lineno C.int) {
	_ = rt.Profiler().Stop(int(lineno))
}

// sysy_check_format and sysy_put_bytes back the variadic putf in hooks.c:
// Go cannot export variadic functions.

//export sysy_check_format
func sysy_check_format(format *C.char) {
	check(emit.Validate(C.GoString(format)))
}

//export sysy_put_bytes
func sysy_put_bytes(p *C.char, n C.int) {
	_, err := rt.Output().Write(C.GoBytes(unsafe.Pointer(p), n))
	check(err)
}

func cSlice[T int32 | float32](p *T, n int) []T {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}

func main() {}
