// Package cancel provides a shared cooperative cancellation flag.
//
// Cancellation is advisory: flipping the token has no effect until handler
// code checks it. The flag uses sequentially consistent atomics since no
// other state is synchronized alongside it.
package cancel

import "sync/atomic"

// Token is a handle on a shared flag. Clones share the underlying
// flag, so cancelling any clone cancels all of them. The zero Token is
// inert: it is never cancelled and Cancel on it is a no-op.
type Token struct {
	flag *atomic.Bool
}

// New returns a fresh, untriggered token.
func New() Token { return Token{flag: new(atomic.Bool)} }

// Clone returns a token sharing this token's flag.
func (t Token) Clone() Token { return t }

// Cancel flips the shared flag. Idempotent.
func (t Token) Cancel() {
	if t.flag != nil {
		t.flag.Store(true)
	}
}

// IsCancelled reports whether any clone of this token was cancelled.
func (t Token) IsCancelled() bool {
	return t.flag != nil && t.flag.Load()
}
