package models

import (
	"time"

	"github.com/dmitrijs2005/skykit/internal/lexicon"
)

// Profile is a snapshot of an account's public profile.
type Profile struct {
	DID         string
	Handle      string
	DisplayName string
	Description string
	Avatar      string
	Banner      string

	FollowersCount int64
	FollowsCount   int64
	PostsCount     int64

	IndexedAt time.Time
}

// ProfileFromView builds a Profile from app.bsky.actor.getProfile output.
func ProfileFromView(v lexicon.ProfileViewDetailed) *Profile {
	return &Profile{
		DID:            v.Did,
		Handle:         v.Handle,
		DisplayName:    v.DisplayName,
		Description:    v.Description,
		Avatar:         v.Avatar,
		Banner:         v.Banner,
		FollowersCount: v.FollowersCount,
		FollowsCount:   v.FollowsCount,
		PostsCount:     v.PostsCount,
		IndexedAt:      parseTime(v.IndexedAt),
	}
}

// ProfileFromBasic builds a Profile from the short view embedded in
// conversations. Counts and description are left empty.
func ProfileFromBasic(v lexicon.ProfileViewBasic) *Profile {
	return &Profile{
		DID:         v.Did,
		Handle:      v.Handle,
		DisplayName: v.DisplayName,
		Avatar:      v.Avatar,
	}
}

// Name returns the display name, or the handle when none is set.
func (p *Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Handle
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
