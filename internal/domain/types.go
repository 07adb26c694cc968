package domain

type SessionID string

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)
