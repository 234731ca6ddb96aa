package handler

type ContextKey string

var (
	SubCtxKey ContextKey = "sub"
	RosterCtx ContextKey = "roster"
)
