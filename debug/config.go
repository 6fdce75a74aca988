package debug

import "os"

// TraceExecution reports whether DEBUG_TRACE_EXECUTION=1 is set in the
// environment. When true, the VM logs its stack and the disassembly of the
// instruction about to run before every dispatch. Re-read on every call
// (rather than cached at process start) so tests can flip the environment
// between cases without import-order surprises.
func TraceExecution() bool { return os.Getenv("DEBUG_TRACE_EXECUTION") == "1" }

// PrintCode reports whether DEBUG_PRINT_CODE=1 is set in the environment.
// When true, the Compiler disassembles the Chunk it just produced once, on
// successful compilation.
func PrintCode() bool { return os.Getenv("DEBUG_PRINT_CODE") == "1" }

// DEBUG gates the internal consistency checks in Assertf/AssertEq. It is
// derived from the same two switches so a debug build of the driver also
// turns on the cheap invariant checks (the VM's stack-underflow Assertf); neither
// switch alone is a perfect fit, so either one enables both.
var DEBUG = TraceExecution() || PrintCode()
