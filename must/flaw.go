package must

import (
	"errors"
	"fmt"

	"github.com/xeptore/flaw/v8"
)

func BeFlaw(err error) *flaw.Flaw {
	if f := new(flaw.Flaw); errors.As(err, &f) {
		return f
	}
	panic(fmt.Sprintf("expected error to be of type *flaw.Flaw, got error of type %T: %v", err, err))
}

// JoinClose merges a deferred close failure into the error already being
// returned. A non-nil err must be a flaw.
func JoinClose(err error, closeErr *flaw.Flaw) error {
	if nil == err {
		return closeErr
	}
	return BeFlaw(err).Join(closeErr)
}
