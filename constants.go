package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
	MinSessionIDLen   = 10
	MaxAnimalLength   = 32
)

// Route constants
const (
	RouteHome       = "/"
	RouteNewGame    = "/new-game"
	RouteLogin      = "/login"
	RoutePlace      = "/place"
	RouteNextLevel  = "/next-level"
	RouteResetLevel = "/reset-level"
	RouteGameState  = "/game-state"
	RouteCurriculum = "/curriculum"
	RouteAnimals    = "/animals"
	RouteHealthz    = "/healthz"
)

// Error message constants
const (
	ErrorInvalidPlacement = "word and numeric slot are required"
	ErrorAnimalTooLong    = "animal name is too long"
	ErrorInvalidLogin     = "short_id and date_of_birth (YYYY-MM-DD) are required"
	ErrorLoginDisabled    = "login is not configured"
	ErrorLoginFailed      = "login failed"
	ErrorTooManyRequests  = "Too many requests. Please slow down."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
