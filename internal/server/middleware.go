package server

import (
	"context"
	stderrors "errors"

	"moviecurator/internal/biz"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
)

// ErrorMapper turns biz error kinds into transport errors. Errors that are
// already kratos errors pass through; anything else becomes a 500.
func ErrorMapper(logger log.Logger) middleware.Middleware {
	l := log.NewHelper(logger)
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			reply, err := handler(ctx, req)
			if err == nil {
				return reply, nil
			}
			mapped := TransportError(err)
			if errors.Code(mapped) >= 500 {
				l.WithContext(ctx).Errorf("request failed: %v", err)
			}
			return nil, mapped
		}
	}
}

// TransportError maps one error to its kratos equivalent
func TransportError(err error) error {
	if err == nil {
		return nil
	}

	var be *biz.Error
	if stderrors.As(err, &be) {
		md := map[string]string{"kind": be.Kind.String()}
		if be.Entity != "" {
			md["entity"] = be.Entity
		}
		if be.ID != "" {
			md["id"] = be.ID
		}
		return kindError(be).WithMetadata(md).WithCause(err)
	}

	var ke *errors.Error
	if stderrors.As(err, &ke) {
		return ke
	}

	return errors.InternalServer("INTERNAL_SERVER_ERROR", "Internal Server Error").WithCause(err)
}

func kindError(be *biz.Error) *errors.Error {
	msg := be.Reason
	if be.Entity != "" {
		msg = be.Entity + " " + be.Reason
	}

	switch be.Kind {
	case biz.KindNotFound:
		return errors.NotFound("NOT_FOUND", msg)
	case biz.KindConflict:
		return errors.Conflict("CONFLICT", msg)
	case biz.KindValidation:
		return errors.BadRequest("VALIDATION_ERROR", msg)
	case biz.KindProvider:
		// Surfaced as a generic failure; the message carries the upstream status.
		return errors.InternalServer("PROVIDER_ERROR", be.Reason)
	case biz.KindConfiguration:
		return errors.InternalServer("CONFIGURATION_ERROR", "Internal Server Error")
	}
	return errors.InternalServer("INTERNAL_SERVER_ERROR", "Internal Server Error")
}
