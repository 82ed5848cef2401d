package mixer

// Result is the engine's result-code type. Mixer-thread code never returns
// one of these; they are reserved for control-thread operations that can
// fail without leaving the tick itself in an invalid state.
type Result int

const (
	NoError Result = iota
	InvalidParameter
	FileNotFound
	FileLoadFailed
	DLLNotFound
	OutOfMemory
	NotImplemented
	UnknownError
)

var resultText = map[Result]string{
	NoError:          "no error",
	InvalidParameter: "invalid parameter",
	FileNotFound:     "file not found",
	FileLoadFailed:   "file load failed",
	DLLNotFound:      "library not found",
	OutOfMemory:      "out of memory",
	NotImplemented:   "not implemented",
	UnknownError:     "unknown error",
}

// Error implements the error interface so a Result can be returned and
// compared as an ordinary Go error while still carrying the numeric code
// callers may want to switch on.
func (r Result) Error() string {
	if s, ok := resultText[r]; ok {
		return s
	}
	return "unrecognized result code"
}

// Ok reports whether r is NoError.
func (r Result) Ok() bool { return r == NoError }
