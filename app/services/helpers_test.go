package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/backoffice/database/migrations"
	"github.com/shashiranjanraj/backoffice/pkg/database"
	"github.com/shashiranjanraj/backoffice/pkg/migration"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
	"github.com/shashiranjanraj/backoffice/pkg/upload"
	"github.com/shashiranjanraj/backoffice/pkg/upload/uploadtest"
)

var ctx = context.Background()

// newDB opens a migrated in-memory database private to the test.
func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	_, err = migration.New(db).Run()
	require.NoError(t, err)
	return db
}

func newDisk() *storage.MemoryDisk { return storage.NewMemoryDisk("http://localhost/storage") }

func pngFile(name string) *upload.File { return upload.New(name, uploadtest.PNG(32)) }

func exists(t *testing.T, d storage.Disk, p string) bool {
	t.Helper()
	ok, err := d.Exists(ctx, p)
	require.NoError(t, err)
	return ok
}

// textFile carries an image name but plain-text content.
func textFile(name string) *upload.File { return upload.New(name, []byte("just some text")) }
