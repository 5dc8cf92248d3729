package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kosmp/BD-5-sem/internal/domain"
)

// Códigos SQLSTATE que tienen traducción de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
	codeRaiseException      = "P0001" // RAISE EXCEPTION dentro de las rutinas
)

// classify envuelve err con el error de dominio que corresponde a su SQLSTATE. Los errores
// sin traducción se devuelven con el contexto op y terminan como ErrTransactionFailed.
// Una FK violada en un "delete ..." significa que otras filas aún referencian la fila: conflicto.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.Message)
	case codeForeignKeyViolation:
		if strings.HasPrefix(op, "delete ") {
			return fmt.Errorf("%w: la fila todavía está referenciada (%s)", domain.ErrConflict, pgErr.ConstraintName)
		}
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.Message)
	case codeCheckViolation, codeInvalidText, codeRaiseException:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
