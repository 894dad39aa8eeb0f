// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"universo/internal/model"
	"universo/internal/repository"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory SQLite database with all tables migrated.
// It is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := repository.NewDB("sqlite", dsn, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	// A single connection keeps the shared-cache database free of table locks.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateSector inserts a sector called name.
func CreateSector(t testing.TB, db *gorm.DB, name string) model.Sector {
	t.Helper()
	sector := model.Sector{Name: name}
	if err := db.Create(&sector).Error; err != nil {
		t.Fatalf("create sector %q: %v", name, err)
	}
	return sector
}

// CreateUser inserts an employee in sector. The password column holds a
// placeholder, not a usable hash.
func CreateUser(t testing.TB, db *gorm.DB, sector model.Sector, name, email string) model.User {
	t.Helper()
	user := model.User{
		Name:     name,
		Email:    email,
		Password: "not-a-hash",
		Role:     model.RoleEmployee,
		SectorID: sector.ID,
	}
	if err := db.Omit("Sector").Create(&user).Error; err != nil {
		t.Fatalf("create user %q: %v", email, err)
	}
	return user
}

// CreateTask inserts a pending task assigned to user.
func CreateTask(t testing.TB, db *gorm.DB, user model.User, title string, due time.Time) model.Task {
	t.Helper()
	task := model.Task{
		Title:    title,
		Priority: model.PriorityMedium,
		Status:   model.StatusPending,
		DueDate:  due,
		SectorID: user.SectorID,
		UserID:   user.ID,
	}
	if err := db.Omit("Sector", "User").Create(&task).Error; err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}

// CreateComment appends a comment to task.
func CreateComment(t testing.TB, db *gorm.DB, task model.Task, author model.User, content string) model.Comment {
	t.Helper()
	comment := model.Comment{Content: content, TaskID: task.ID, UserID: author.ID}
	if err := db.Omit("Task", "User").Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return comment
}
