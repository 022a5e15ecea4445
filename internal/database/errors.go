package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

func constraintCode(err error) (sqlite3.ErrNoExtended, bool) {
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return se.ExtendedCode, true
	}
	return 0, false
}

func IsUniqueViolation(err error) bool {
	code, ok := constraintCode(err)
	return ok && (code == sqlite3.ErrConstraintUnique || code == sqlite3.ErrConstraintPrimaryKey)
}

func IsForeignKeyViolation(err error) bool {
	code, ok := constraintCode(err)
	return ok && code == sqlite3.ErrConstraintForeignKey
}

func IsCheckViolation(err error) bool {
	code, ok := constraintCode(err)
	return ok && code == sqlite3.ErrConstraintCheck
}
