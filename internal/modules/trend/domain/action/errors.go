package action

import "FleetOps/pkg/xerr"

var (
	ErrForbidden         = xerr.New(xerr.Forbidden, "only owner or mechanic can manage trend actions")
	ErrNotFound          = xerr.New(xerr.NotFound, "trend action not found")
	ErrInvalidStatus     = xerr.New(xerr.BadRequest, "status must be open, in_review or resolved")
	ErrInvalidActionType = xerr.New(xerr.BadRequest, "action_type must be asset_health_decline or mechanic_decline")
	ErrInvalidAssetType  = xerr.New(xerr.BadRequest, "asset_type must be vehicle or equipment")
	ErrActiveConflict    = xerr.New(xerr.Conflict, "another open trend action already exists for this asset")
)
