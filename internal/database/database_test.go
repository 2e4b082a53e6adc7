package database

import (
	"errors"
	"fmt"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'taken-slug' for key 'idx_articles_slug'"}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"duplicate entry", dup, true},
		{"wrapped duplicate entry", fmt.Errorf("update article: %w", dup), true},
		{"gorm sentinel", gorm.ErrDuplicatedKey, true},
		{"other mysql error", &mysqlDriver.MySQLError{Number: 1452}, false},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		if got := IsDuplicateKey(tt.err); got != tt.want {
			t.Errorf("%s: IsDuplicateKey = %v, want %v", tt.name, got, tt.want)
		}
	}
}
