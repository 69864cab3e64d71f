package domain

import (
	"time"
)

// InfoKeys is the allow-list of personal sizing attributes a user may store
// on their profile. Submitted keys outside this list are silently dropped.
var InfoKeys = []string{
	"shoeSize",
	"ringSize",
	"dressSize",
	"sweaterSize",
	"shirtSize",
	"pantsSize",
	"coatSize",
	"hatSize",
	"phoneModel",
}

// IsInfoKey reports whether the given key is on the profile info allow-list.
func IsInfoKey(key string) bool {
	for _, k := range InfoKeys {
		if k == key {
			return true
		}
	}
	return false
}

// ProfilePicture is a reference to an uploaded profile picture file.
type ProfilePicture struct {
	File string `json:"file"`
	URL  string `json:"url,omitempty"`
}

// User is one user document. The id doubles as the login name and as the
// owner id of the embedded wishlist.
type User struct {
	ID             string            `json:"id"`
	PasswordHash   string            `json:"-"`
	Info           map[string]string `json:"info,omitempty"`
	ProfilePicture *ProfilePicture   `json:"profile_picture,omitempty"`
	Wishlist       []WishlistItem    `json:"wishlist"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// SetInfo copies only allow-listed keys from values into the user's info map.
func (u *User) SetInfo(values map[string]string) {
	if u.Info == nil {
		u.Info = make(map[string]string, len(values))
	}
	for k, v := range values {
		if IsInfoKey(k) {
			u.Info[k] = v
		}
	}
}
