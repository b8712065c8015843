package models

import "time"

// User is one bot user: a courier, a branch senior or an administrator.
// ID is the Telegram user id, ChatID the private chat for outbound messages.
type User struct {
	ID        int64
	ChatID    int64
	FullName  string
	Username  string
	Role      string // courier, senior, admin
	Branch    string // branch id; empty for admins without a branch
	Status    string // pending, approved
	CreatedAt time.Time
	UpdatedAt time.Time
}
