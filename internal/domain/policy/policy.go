// Package policy is the authorization decision table. Decisions are pure: the caller
// resolves the ownership chain first and passes it in, so nothing here touches storage.
package policy

import (
	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
)

// Action is an operation gated by the authorization engine.
type Action string

const (
	ActionCreateCompany       Action = "company:create"
	ActionUpdateCompany       Action = "company:update"
	ActionCreateJob           Action = "job:create"
	ActionUpdateJob           Action = "job:update"
	ActionDeleteJob           Action = "job:delete"
	ActionApplyToJob          Action = "job:apply"
	ActionViewJobApplications Action = "job:applications:list"
	ActionViewApplication     Action = "application:view"
	ActionAdmin               Action = "admin"
)

// Authorize returns nil when principal may perform action on the resource described by chain.
//
// Denials are AppErrors of two kinds: KindUnauthorized when the identity lacks permission or
// ownership, and KindBadRequest when a precondition of the action is violated (wrong role for
// the action, self-application, duplicate application).
func Authorize(principal *entity.User, action Action, chain entity.OwnershipChain) error {
	if principal == nil {
		return domainerrors.ErrPermissionDenied
	}

	switch action {
	case ActionCreateCompany:
		if principal.HasRole(entity.RoleCompany, entity.RoleAdmin) {
			return nil
		}

		return domainerrors.ErrCompanyRoleRequired

	case ActionUpdateCompany, ActionCreateJob, ActionUpdateJob, ActionDeleteJob, ActionViewJobApplications:
		return ownerOrAdmin(principal, chain)

	case ActionApplyToJob:
		return canApply(principal, chain)

	case ActionViewApplication:
		if chain.IsApplicant(principal) {
			return nil
		}

		return ownerOrAdmin(principal, chain)

	case ActionAdmin:
		if principal.IsAdmin() {
			return nil
		}

		return domainerrors.ErrPermissionDenied

	default:
		return domainerrors.ErrPermissionDenied
	}
}

func ownerOrAdmin(principal *entity.User, chain entity.OwnershipChain) error {
	if principal.IsAdmin() || chain.IsCompanyOwner(principal) {
		return nil
	}

	return domainerrors.ErrPermissionDenied
}

// Checks run in the order the failures are reported to the client.
func canApply(principal *entity.User, chain entity.OwnershipChain) error {
	if principal.Role != entity.RoleUser {
		return domainerrors.ErrApplicantRoleRequired
	}
	if chain.IsCompanyOwner(principal) {
		return domainerrors.ErrSelfApplication
	}
	if chain.AlreadyApplied {
		return domainerrors.ErrAlreadyApplied
	}

	return nil
}
