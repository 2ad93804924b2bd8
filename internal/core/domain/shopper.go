package domain

import "time"

type Shopper struct {
	ID        uint64
	Email     string
	Password  string
	CreatedAt time.Time
}
