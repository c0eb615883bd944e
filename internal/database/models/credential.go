package models

import "time"

// Credential represents stored cookies for one (user, site) pair
type Credential struct {
	UserID    int64
	Site      string
	Cookies   string
	UpdatedAt time.Time
}
