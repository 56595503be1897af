package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// constraintViolation classifies integrity errors raised by a write.
type constraintViolation int

const (
	noViolation constraintViolation = iota
	uniqueViolation
	foreignKeyViolation
	checkViolation
)

// constraintSignatures pairs the error gorm translates to (TranslateError) with
// the raw SQLSTATE seen when translation is off or the driver wraps the error.
//
//nolint:gochecknoglobals
var constraintSignatures = []struct {
	translated error
	sqlState   string
	kind       constraintViolation
}{
	{translated: gorm.ErrDuplicatedKey, sqlState: "SQLSTATE 23505", kind: uniqueViolation},
	{translated: gorm.ErrForeignKeyViolated, sqlState: "SQLSTATE 23503", kind: foreignKeyViolation},
	{translated: gorm.ErrCheckConstraintViolated, sqlState: "SQLSTATE 23514", kind: checkViolation},
}

func classifyConstraint(err error) constraintViolation {
	if err == nil {
		return noViolation
	}

	msg := err.Error()
	for _, sig := range constraintSignatures {
		if errors.Is(err, sig.translated) || strings.Contains(msg, sig.sqlState) {
			return sig.kind
		}
	}

	return noViolation
}
