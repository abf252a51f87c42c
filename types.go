package main

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"echopath/internal/curriculum"
	"echopath/internal/engine"
	"echopath/internal/profile"
)

type contextKey string

// profileLogin is the part of the profile client the handlers need.
type profileLogin interface {
	Login(ctx context.Context, shortID string, dateOfBirth time.Time) (*profile.LoginResponse, error)
}

// App holds configuration and all per-process state of the server.
type App struct {
	IsProduction   bool
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	DefaultAnimal  string
	SessionsDir    string
	Templates      curriculum.Templates
	Profiles       profileLogin
	StartTime      time.Time

	GameSessions map[string]*GameSession
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*clientLimiter
	LimiterMutex sync.Mutex
}

// GameSession is one player's engine. mu is the single lock around every
// engine call for the session.
type GameSession struct {
	mu             sync.Mutex
	Engine         *engine.Engine
	LastAccessTime time.Time
}

// clientLimiter is a per-client rate limiter with the time it was last used.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}
