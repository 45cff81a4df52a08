package auth

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid auth token")

const defaultTokenTTL = 7 * 24 * time.Hour

// Strategy issues and verifies bearer tokens carrying a user id.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token strategies.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}

func (o Options) normalized() Options {
	if o.TTL <= 0 {
		o.TTL = defaultTokenTTL
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
