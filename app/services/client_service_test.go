package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/backoffice/app/services"
)

func seedCategory(t *testing.T, svc *services.CategoryService, name string) uint {
	t.Helper()
	c, err := svc.Create(ctx, services.CategoryInput{CategoryName: name})
	require.NoError(t, err)
	return c.ID
}

func TestClientCreate(t *testing.T) {
	db, disk := newDB(t), newDisk()
	catID := seedCategory(t, services.NewCategoryService(db, disk), "Retail")
	svc := services.NewClientService(db, disk)

	c, err := svc.Create(ctx, services.ClientInput{
		CategoryID:  "1",
		ClientName:  "Acme",
		ClientPhone: "01712345678",
	})
	require.NoError(t, err)
	assert.Equal(t, catID, c.CategoryID)
	assert.Equal(t, "Acme", c.ClientName)
	assert.Equal(t, "01712345678", c.ClientPhone)
	assert.Nil(t, c.Image)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestClientPhoneLength(t *testing.T) {
	db, disk := newDB(t), newDisk()
	seedCategory(t, services.NewCategoryService(db, disk), "Retail")
	svc := services.NewClientService(db, disk)

	cases := map[string]bool{
		"0171234567":   false, // 10
		"01712345678":  true,  // 11
		"017123456789": false, // 12
	}
	for phone, ok := range cases {
		t.Run(phone, func(t *testing.T) {
			_, err := svc.Create(ctx, services.ClientInput{
				CategoryID:  "1",
				ClientName:  "Acme",
				ClientPhone: phone,
			})
			if ok {
				assert.NoError(t, err)
				return
			}
			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "The client_phone field must be 11 characters.", verr.Fields["client_phone"])
		})
	}
}

func TestClientFieldsAreTrimmed(t *testing.T) {
	db, disk := newDB(t), newDisk()
	seedCategory(t, services.NewCategoryService(db, disk), "Retail")
	svc := services.NewClientService(db, disk)

	_, err := svc.Create(ctx, services.ClientInput{CategoryID: "1", ClientName: "Acme", ClientPhone: " 0171234567"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr, "ten digits plus a space is still ten")
	assert.Equal(t, "The client_phone field must be 11 characters.", verr.Fields["client_phone"])

	c, err := svc.Create(ctx, services.ClientInput{CategoryID: " 1 ", ClientName: "  Acme ", ClientPhone: " 01712345678 "})
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.ClientName)
	assert.Equal(t, "01712345678", c.ClientPhone)

	u, err := svc.Update(ctx, c.ID, services.ClientInput{CategoryID: "1", ClientName: "Acme", ClientPhone: "01787654321\t"})
	require.NoError(t, err)
	assert.Equal(t, "01787654321", u.ClientPhone)
}

func TestClientUnknownCategory(t *testing.T) {
	disk := newDisk()
	svc := services.NewClientService(newDB(t), disk)

	_, err := svc.Create(ctx, services.ClientInput{
		CategoryID:  "7",
		ClientName:  "Acme",
		ClientPhone: "01712345678",
		Image:       pngFile("a.png"),
	})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "The selected category_id is invalid.", verr.Fields["category_id"])
	assert.Empty(t, disk.Paths())
}

func TestClientCategoryIDMustBeInteger(t *testing.T) {
	svc := services.NewClientService(newDB(t), newDisk())

	_, err := svc.Create(ctx, services.ClientInput{CategoryID: "one", ClientName: "Acme", ClientPhone: "01712345678"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "The category_id field must be an integer.", verr.Fields["category_id"])
}

func TestClientUpdateSwapsImageAndFields(t *testing.T) {
	db, disk := newDB(t), newDisk()
	cats := services.NewCategoryService(db, disk)
	first := seedCategory(t, cats, "Retail")
	second := seedCategory(t, cats, "Wholesale")
	svc := services.NewClientService(db, disk)

	c, err := svc.Create(ctx, services.ClientInput{
		CategoryID:  "1",
		ClientName:  "Acme",
		ClientPhone: "01712345678",
		Image:       pngFile("a.png"),
	})
	require.NoError(t, err)
	require.Equal(t, first, c.CategoryID)
	old := *c.Image

	u, err := svc.Update(ctx, c.ID, services.ClientInput{
		CategoryID:  "2",
		ClientName:  "Acme Ltd",
		ClientPhone: "01812345678",
		Image:       pngFile("b.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, second, u.CategoryID)
	assert.Equal(t, "Acme Ltd", u.ClientName)
	assert.Equal(t, "01812345678", u.ClientPhone)
	assert.True(t, strings.HasPrefix(*u.Image, services.ClientImageDir+"/"))
	assert.False(t, exists(t, disk, old))
	assert.True(t, exists(t, disk, *u.Image))
}

func TestClientSurvivesCategoryDelete(t *testing.T) {
	db, disk := newDB(t), newDisk()
	cats := services.NewCategoryService(db, disk)
	catID := seedCategory(t, cats, "Retail")
	svc := services.NewClientService(db, disk)

	c, err := svc.Create(ctx, services.ClientInput{CategoryID: "1", ClientName: "Acme", ClientPhone: "01712345678"})
	require.NoError(t, err)

	_, err = cats.Delete(ctx, catID)
	require.NoError(t, err)

	found, err := svc.Find(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, catID, found.CategoryID, "dangling reference is kept")
}

func TestClientDelete(t *testing.T) {
	db, disk := newDB(t), newDisk()
	seedCategory(t, services.NewCategoryService(db, disk), "Retail")
	svc := services.NewClientService(db, disk)

	c, err := svc.Create(ctx, services.ClientInput{
		CategoryID:  "1",
		ClientName:  "Acme",
		ClientPhone: "01712345678",
		Image:       pngFile("a.png"),
	})
	require.NoError(t, err)

	list, err := svc.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, disk.Paths())
}
