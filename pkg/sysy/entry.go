package sysy

// The methods below are the runtime's entry points, named after the library
// functions compiled programs call. Input and output failures are fatal:
// they unwind to Run, which finalizes the runtime and returns the error.

// GetInt reads the next integer token.
func (rt *Runtime) GetInt() int32 {
	return must(rt.in.ReadInt())
}

// GetCh reads the next raw character.
func (rt *Runtime) GetCh() int32 {
	return int32(must(rt.in.ReadChar()))
}

func (rt *Runtime) GetFloat() float32 {
	return must(rt.in.ReadFloat())
}

// GetArray reads a count followed by that many integers into a and returns
// the count. The count must not exceed len(a).
func (rt *Runtime) GetArray(a []int32) int32 {
	return int32(must(rt.in.ReadIntArray(a)))
}

func (rt *Runtime) GetFArray(a []float32) int32 {
	return int32(must(rt.in.ReadFloatArray(a)))
}

func (rt *Runtime) PutInt(a int32) {
	z.Check(rt.out.WriteInt(a))
}

func (rt *Runtime) PutCh(a int32) {
	z.Check(rt.out.WriteChar(a))
}

func (rt *Runtime) PutFloat(a float32) {
	z.Check(rt.out.WriteFloat(a))
}

// PutArray writes the first n elements of a separated by spaces.
func (rt *Runtime) PutArray(n int32, a []int32) {
	z.Check(rt.out.WriteIntArray(int(n), a))
}

func (rt *Runtime) PutFArray(n int32, a []float32) {
	z.Check(rt.out.WriteFloatArray(int(n), a))
}

// PutF writes args formatted by the restricted printf grammar of
// emit.Format.
func (rt *Runtime) PutF(format string, args ...any) {
	z.Check(rt.out.WriteFormatted(format, args...))
}

// StartTime is the target of the starttime() macro.
func (rt *Runtime) StartTime(line int32) {
	rt.prof.Start(int(line))
}

// StopTime is the target of the stoptime() macro. An unmatched stop is
// logged and otherwise ignored.
func (rt *Runtime) StopTime(line int32) {
	_ = rt.prof.Stop(int(line))
}
