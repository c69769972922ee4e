package middleware

import "github.com/gin-gonic/gin"

// Chain is an ordered list of request stages. A stage either calls Next to continue
// or aborts the context to short-circuit the rest of the chain, handler included.
type Chain []gin.HandlerFunc

// NewChain builds a chain from stages in order
func NewChain(stages ...gin.HandlerFunc) Chain {
	return append(Chain(nil), stages...)
}

// Append returns a new chain with stages added at the end, the receiver is left untouched.
func (c Chain) Append(stages ...gin.HandlerFunc) Chain {
	out := make(Chain, 0, len(c)+len(stages))
	out = append(out, c...)
	return append(out, stages...)
}

// Then terminates the chain with handler.
func (c Chain) Then(handler gin.HandlerFunc) gin.HandlersChain {
	return gin.HandlersChain(c.Append(handler))
}
