package worklog

import (
	"errors"
	"strings"

	worklogerrors "spincraft-tracker/internal/worklog/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueEmployeeDate = "uq_work_logs_employee_date"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return worklogerrors.ErrWorkLogNotFound
	}

	if IsDuplicate(err) {
		return worklogerrors.ErrWorkLogExists
	}

	return err
}

// IsDuplicate reports a unique violation on (employee_id, date).
func IsDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == uniqueEmployeeDate
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueEmployeeDate) {
		return true
	}
	// sqlite reports the columns instead of the index name.
	return strings.Contains(errMsg, "unique constraint failed") &&
		strings.Contains(errMsg, "work_logs.employee_id") &&
		strings.Contains(errMsg, "work_logs.date")
}
