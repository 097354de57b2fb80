package entity

import "github.com/google/uuid"

// OwnershipChain is the path from a resource to the principals whose authority governs it.
// It is built by explicit lookups and carries ids only.
type OwnershipChain struct {
	ResourceID     uuid.UUID
	CompanyID      uuid.UUID
	CompanyOwnerID uuid.UUID
	// ApplicantID is set for application chains only.
	ApplicantID uuid.UUID
	// AlreadyApplied is set when resolving an apply request for a specific principal.
	AlreadyApplied bool
}

// IsCompanyOwner reports whether the user owns the company at the root of the chain.
func (c OwnershipChain) IsCompanyOwner(user *User) bool {
	return user != nil && c.CompanyOwnerID != uuid.Nil && c.CompanyOwnerID == user.ID
}

// IsApplicant reports whether the user submitted the application at the end of the chain.
func (c OwnershipChain) IsApplicant(user *User) bool {
	return user != nil && c.ApplicantID != uuid.Nil && c.ApplicantID == user.ID
}
