package middlewares

// Keys for values stashed on the gin context. gin's Set takes plain strings.
const (
	CtxUserID    = "user_id"
	CtxRequestID = "request_id"
)
