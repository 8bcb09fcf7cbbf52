package utils

// Gin context keys shared between middleware and handlers.
const (
	ContextKeyRequestID = "requestID"
	ContextKeyUserID    = "userID"
	ContextKeyUsername  = "username"
	ContextKeyUserRole  = "userRole"
)
