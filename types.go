package main

import (
	"time"
)

// Scopes is the scope history: scope name -> last time it was used.
type Scopes map[string]time.Time
