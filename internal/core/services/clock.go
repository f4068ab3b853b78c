package services

import (
	"time"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() ports.Clock { return systemClock{} }
