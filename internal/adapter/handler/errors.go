package handler

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/harbor/internal/core/domain"
	"github.com/rl1809/harbor/internal/core/service"
)

type errorMapping struct {
	target  error
	status  int
	code    codes.Code
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrVesselNotFound, http.StatusNotFound, codes.NotFound, "vessel not found"},
	{domain.ErrInvalidVessel, http.StatusBadRequest, codes.InvalidArgument, "invalid vessel"},
	{domain.ErrUnknownOrder, http.StatusBadRequest, codes.InvalidArgument, "unknown speed order"},
	{domain.ErrCrewPositionOutOfRange, http.StatusUnprocessableEntity, codes.OutOfRange, "crew position out of range"},
	{domain.ErrVersionConflict, http.StatusConflict, codes.Aborted, "vessel was modified concurrently"},
	{service.ErrDuplicateRequest, http.StatusConflict, codes.AlreadyExists, "duplicate request"},
}

func lookupError(err error) errorMapping {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m
		}
	}
	return errorMapping{status: http.StatusInternalServerError, code: codes.Internal, message: "internal error"}
}

func grpcError(err error) error {
	m := lookupError(err)
	return status.Error(m.code, m.message)
}
