package controllers

import (
	"errors"

	"github.com/bionicotaku/lingo-services-social/internal/services"
	kerrors "github.com/go-kratos/kratos/v2/errors"
)

// 传输层错误 Reason 常量。
const (
	reasonUnauthenticated    = "UNAUTHENTICATED"
	reasonInvalidArgument    = "INVALID_ARGUMENT"
	reasonNotFound           = "NOT_FOUND"
	reasonPermissionDenied   = "PERMISSION_DENIED"
	reasonFailedPrecondition = "FAILED_PRECONDITION"
	reasonUnavailable        = "UNAVAILABLE"
	reasonInternal           = "INTERNAL"
)

// errUnauthenticated 为统一的未认证响应。
func errUnauthenticated() error {
	return kerrors.Unauthorized(reasonUnauthenticated, "invalid user info")
}

// toKratosError 将业务层错误映射为 kratos 错误响应。
func toKratosError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrInvalidOffset),
		errors.Is(err, services.ErrFrameOutOfRange):
		return kerrors.BadRequest(reasonInvalidArgument, err.Error())
	case errors.Is(err, services.ErrTargetNotFound),
		errors.Is(err, services.ErrVideoNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		return kerrors.NotFound(reasonNotFound, err.Error())
	case errors.Is(err, services.ErrNotVideoOwner):
		return kerrors.Forbidden(reasonPermissionDenied, err.Error())
	case errors.Is(err, services.ErrVideoNotReady):
		return kerrors.New(412, reasonFailedPrecondition, err.Error())
	case errors.Is(err, services.ErrSuggestionUnavailable),
		errors.Is(err, services.ErrFramesUnavailable):
		return kerrors.ServiceUnavailable(reasonUnavailable, err.Error())
	default:
		return kerrors.InternalServer(reasonInternal, err.Error())
	}
}
