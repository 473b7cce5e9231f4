package sysy

import (
	"errors"
)

// Main is a compiled program's entry point. Its result is the exit status.
type Main func(rt *Runtime) int32

// ExitFailure is the status Run reports when the program was aborted by a
// fatal runtime error.
const ExitFailure = 1

// Run executes main between New and Close. Close runs on every path out of
// main: normal return, a fatal input/output error raised by an entry point,
// or a panic in main itself, which is re-raised after finalization.
func Run(main Main, opts ...Option) (code int, err error) {
	rt := New(opts...)
	defer func() {
		err = errors.Join(err, rt.Close())
	}()

	err = z.Recover(func() {
		code = int(main(rt))
	})
	if err != nil {
		rt.log.Error().Err(err).Msg("program aborted")
		code = ExitFailure
	}
	return code, err
}
