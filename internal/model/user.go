package model

import "time"

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// EditableUserInfo is the allow-list of profile fields a user may change
type EditableUserInfo struct {
	Name     string `gorm:"type:text;not null" json:"name" bson:"name"`
	LastName string `gorm:"type:text;default:'lastName'" json:"lastName" bson:"lastName"`
	Email    string `gorm:"type:text;not null;uniqueIndex" json:"email" bson:"email"`
	Location string `gorm:"type:text;default:'My city'" json:"location" bson:"location"`
}

// User is the authentication subject.
// Password is tagged json:"-" so no representation sent to a client can carry it.
type User struct {
	ID string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"_id" bson:"_id"`
	EditableUserInfo `bson:",inline"`
	Password         string `gorm:"type:text;not null" json:"-" bson:"password"`
	Role             string `gorm:"type:text;not null;default:'user'" json:"role" bson:"role"`
	// IsDemo marks the shared read-only demonstration account.
	IsDemo    bool      `gorm:"not null;default:false" json:"isDemo" bson:"isDemo"`
	Avatar    string    `gorm:"type:text" json:"avatar,omitempty" bson:"avatar,omitempty"`
	AvatarKey string    `gorm:"type:text" json:"-" bson:"avatarKey,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserUpdate carries an allow-listed profile change plus an optional new avatar.
type UserUpdate struct {
	EditableUserInfo
	Avatar    string
	AvatarKey string
}

// UserResponse wraps a user
type UserResponse struct {
	User User `json:"user"`
}

// LoginResponse is returned on successful login, the token itself travels in a cookie.
type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// AppStatsResponse is the admin overview
type AppStatsResponse struct {
	Users int64 `json:"users"`
	Jobs  int64 `json:"jobs"`
}
