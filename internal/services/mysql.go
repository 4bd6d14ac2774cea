package services

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateKey detects a MySQL unique index violation (error 1062).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
