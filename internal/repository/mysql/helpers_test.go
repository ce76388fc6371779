package mysql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leonemunyao/alx-project-nexus/config"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateEntry(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.True(t, IsDuplicateEntry(dup))
	assert.True(t, IsDuplicateEntry(fmt.Errorf("insert failed: %w", dup)))

	assert.False(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicateEntry(errors.New("some other error")))
	assert.False(t, IsDuplicateEntry(nil))
}

func TestAbsoluteImageURL(t *testing.T) {
	config.AppConfig.BackendURL = "http://localhost:8080"

	assert.Equal(t, "http://localhost:8080/uploads/cars/a.jpg", absoluteImageURL("cars/a.jpg"))
	assert.Equal(t, "https://bucket.s3.amazonaws.com/cars/a.jpg",
		absoluteImageURL("https://bucket.s3.amazonaws.com/cars/a.jpg"))
	assert.Equal(t, "", absoluteImageURL(""))
}

// TestRelativeImageURL 测试落库前还原相对路径，读写往返不改变存储值
func TestRelativeImageURL(t *testing.T) {
	config.AppConfig.BackendURL = "http://localhost:8080"

	assert.Equal(t, "dealerships/a.jpg",
		relativeImageURL(absoluteImageURL("dealerships/a.jpg")))
	assert.Equal(t, "dealerships/a.jpg", relativeImageURL("dealerships/a.jpg"))
	assert.Equal(t, "https://bucket.s3.amazonaws.com/a.jpg",
		relativeImageURL("https://bucket.s3.amazonaws.com/a.jpg"))
}
