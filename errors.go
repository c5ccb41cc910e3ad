package md2tg

import (
	"errors"

	"github.com/alnah/go-md2tg/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidMaxLength  = pipeline.ErrInvalidMaxLength
	ErrInvalidLengthUnit = errors.New("invalid length unit")
	ErrInvalidStyle      = errors.New("invalid style")
	ErrRender            = errors.New("rendering failed")

	// Delivery errors.
	ErrDelivery      = errors.New("message delivery failed")
	ErrParseRejected = errors.New("transport rejected message markup")
)
