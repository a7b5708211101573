package remesh

import "github.com/pkg/errors"

// Threading errors out of island assembly and the merge would add a ton of
// complexity for conditions that can only occur if an invariant is broken
// (e.g. a triangle referencing a vertex that doesn't exist). Instead, we
// panic with an error, and the public API recovers to convert it back.

type RemeshError error

// Panic with a RemeshError.
func fatalf(format string, args ...interface{}) {
	panic(errors.Errorf(format, args...))
}

func HandleRemeshPanicRecover(r interface{}) error {
	if r != nil {
		if remeshError, ok := r.(RemeshError); ok {
			return remeshError
		}
		panic(r)
	}
	return nil
}
