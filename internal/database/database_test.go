package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentportal/internal/config"
	"studentportal/internal/model"
)

func TestInitDBSQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBPath: "file:initdb?mode=memory&cache=shared"}

	db, err := InitDB(cfg)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&model.Student{}))
	assert.True(t, db.Migrator().HasColumn(&model.Student{}, "password_hash"))
	assert.False(t, db.Migrator().HasColumn(&model.Student{}, "password"))
}

func TestOpenInMemoryIsolated(t *testing.T) {
	a, err := OpenInMemory("isolated_a")
	require.NoError(t, err)
	b, err := OpenInMemory("isolated_b")
	require.NoError(t, err)

	require.NoError(t, a.Create(&model.Student{StudentID: "S-1", FirstName: "A", LastName: "B", Email: "a@b.c"}).Error)

	var count int64
	require.NoError(t, b.Model(&model.Student{}).Count(&count).Error)
	assert.Zero(t, count)
}
