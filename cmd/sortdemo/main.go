// Command sortdemo is a compiled program written against the runtime by
// hand. It is equivalent to this SysY source:
//
//	int a[1024];
//	int main() {
//		int n = getarray(a);
//		starttime();
//		... insertion sort ...
//		stoptime();
//		putarray(n, a);
//		putch(10);
//		putf("sorted %d numbers\n", n);
//		return 0;
//	}
//
// Usage: sortdemo [-pprof file] [-log-level level] < input
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gosylib/pkg/profiler"
	"gosylib/pkg/sysy"
)

const maxElems = 1024

func program(rt *sysy.Runtime) int32 {
	var a [maxElems]int32
	n := rt.GetArray(a[:])

	rt.StartTime(4)
	for i := int32(1); i < n; i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
	rt.StopTime(6)
	rt.Logger().Debug().Int32("n", n).Msg("array sorted")

	rt.PutArray(n, a[:])
	rt.PutCh('\n')
	rt.PutF("sorted %d numbers\n", n)
	return 0
}

// run executes the program with the given arguments and streams and returns
// the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sortdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pprofPath := fs.String("pprof", "", "also write the timers as a pprof profile to this file")
	logLevel := fs.String("log-level", "warn", "diagnostic log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := []sysy.Option{
		sysy.WithInput(stdin),
		sysy.WithOutput(stdout),
		sysy.WithDiagnostics(stderr),
		sysy.WithPairing(profiler.PairInnermost),
		sysy.WithSource("sortdemo.sy"),
		sysy.WithLogLevel(*logLevel),
	}
	var pprofFile *os.File
	if *pprofPath != "" {
		f, err := os.Create(*pprofPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to create profile file: %v\n", err)
			return 1
		}
		pprofFile = f
		opts = append(opts, sysy.WithProfileOutput(f))
	}

	code, err := sysy.Run(program, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Program aborted: %v\n", err)
	}
	if pprofFile != nil {
		if err := pprofFile.Close(); err != nil {
			fmt.Fprintf(stderr, "Failed to close profile file: %v\n", err)
			if code == 0 {
				code = 1
			}
		}
	}
	return code & 0xff
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
