package sessions

import "time"

// Session records one successful gate unlock. The gate cookie carries its ID.
type Session struct {
	ID         string    `json:"id"`
	ClientHash string    `json:"clientHash"`
	UserAgent  string    `json:"userAgent"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}
