package model

import "github.com/google/uuid"

// Principal is the authenticated profile attached to a request.
type Principal struct {
	ID       uuid.UUID
	Type     ProfileType
	FullName string
}

func (p Principal) IsClient() bool {
	return p.Type == ProfileTypeClient
}

func (p Principal) IsContractor() bool {
	return p.Type == ProfileTypeContractor
}
