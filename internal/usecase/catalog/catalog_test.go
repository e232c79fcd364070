package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/media"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var (
	admin = identity.Actor{UserID: 1, Role: models.RoleAdmin}
	user  = identity.Actor{UserID: 2, Role: models.RoleUser}
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) GetJSON(_ context.Context, key string, dst any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false
	}
	c.hits++
	return json.Unmarshal(raw, dst) == nil
}

func (c *mapCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, _ := json.Marshal(v)
	c.data[key] = raw
}

func (c *mapCache) Invalidate(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
}

type fakeImages struct {
	folders []string
	err     error
}

func (f *fakeImages) Upload(_ context.Context, folder string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.folders = append(f.folders, folder)
	return "https://cdn.salon.vn/" + folder + "/x.webp", nil
}

func TestServiceCRUD(t *testing.T) {
	s := memory.New()
	uc := NewServices(s.Catalog(), nil, nil, nil, time.Minute)
	ctx := context.Background()

	svc, err := uc.Create(ctx, admin, CreateServiceInput{
		Name:     "Cut",
		Price:    200000,
		Category: "hair",
		Images:   []ImageInput{{URL: "https://img/cut.webp", Title: "front"}, {}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.GenderUnisex, svc.Gender)
	require.Len(t, svc.Images, 1)
	assert.Equal(t, "front", svc.Images[0].Title)

	price := 250000.0
	gender := models.GenderFemale
	updated, err := uc.Update(ctx, admin, svc.ID, UpdateServiceInput{Price: &price, Gender: &gender})
	require.NoError(t, err)
	assert.Equal(t, 250000.0, updated.Price)
	assert.Equal(t, "Cut", updated.Name)
	assert.Len(t, updated.Images, 1, "images survive an update")

	list, err := uc.List(ctx, catalogdomain.ServiceFilter{Gender: models.GenderFemale})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = uc.List(ctx, catalogdomain.ServiceFilter{Query: "color"})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, uc.Delete(ctx, admin, svc.ID))
	_, err = uc.Get(ctx, svc.ID)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestServiceValidation(t *testing.T) {
	s := memory.New()
	uc := NewServices(s.Catalog(), nil, nil, nil, time.Minute)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateServiceInput
		code string
	}{
		{"no name", CreateServiceInput{Price: 1}, "missing_fields"},
		{"zero price", CreateServiceInput{Name: "Cut"}, "invalid_price"},
		{"negative price", CreateServiceInput{Name: "Cut", Price: -5}, "invalid_price"},
		{"bad gender", CreateServiceInput{Name: "Cut", Price: 1, Gender: "Other"}, "invalid_gender"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, admin, tc.in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}

	_, err := uc.Create(ctx, user, CreateServiceInput{Name: "Cut", Price: 1})
	assert.True(t, httperr.IsBusiness(err, "admin_only"))

	_, err = uc.List(ctx, catalogdomain.ServiceFilter{Gender: "kids"})
	assert.True(t, httperr.IsBusiness(err, "invalid_gender"))
}

func TestServiceInUse(t *testing.T) {
	s := memory.New()
	uc := NewServices(s.Catalog(), nil, nil, nil, time.Minute)
	ctx := context.Background()

	svc, err := uc.Create(ctx, admin, CreateServiceInput{Name: "Cut", Price: 1})
	require.NoError(t, err)
	require.NoError(t, s.Appointments().CreateAppointment(ctx, &models.Appointment{
		UserID: 2, ServiceID: svc.ID, Status: "completed",
	}))

	assert.True(t, httperr.IsBusiness(uc.Delete(ctx, admin, svc.ID), "service_in_use"))
}

func TestServiceCacheInvalidation(t *testing.T) {
	s := memory.New()
	c := newMapCache()
	uc := NewServices(s.Catalog(), c, nil, nil, time.Minute)
	ctx := context.Background()

	_, err := uc.Create(ctx, admin, CreateServiceInput{Name: "Cut", Price: 1})
	require.NoError(t, err)

	first, err := uc.List(ctx, catalogdomain.ServiceFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = uc.List(ctx, catalogdomain.ServiceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, c.hits)

	_, err = uc.Create(ctx, admin, CreateServiceInput{Name: "Wash", Price: 1})
	require.NoError(t, err)

	after, err := uc.List(ctx, catalogdomain.ServiceFilter{})
	require.NoError(t, err)
	assert.Len(t, after, 2)
	assert.Equal(t, 1, c.hits, "write dropped the cached list")
}

func TestServiceImages(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	_, err := NewServices(s.Catalog(), nil, nil, nil, time.Minute).
		AddImage(ctx, admin, 1, "front", strings.NewReader("x"))
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	noStorage := NewServices(s.Catalog(), nil, nil, nil, time.Minute)
	svc, err := noStorage.Create(ctx, admin, CreateServiceInput{Name: "Cut", Price: 1})
	require.NoError(t, err)

	_, err = noStorage.AddImage(ctx, admin, svc.ID, "front", strings.NewReader("x"))
	assert.True(t, httperr.IsBusiness(err, "storage_not_configured"))

	images := &fakeImages{}
	uc := NewServices(s.Catalog(), nil, images, nil, time.Minute)

	got, err := uc.AddImage(ctx, admin, svc.ID, "front", strings.NewReader("x"))
	require.NoError(t, err)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "https://cdn.salon.vn/services/x.webp", got.Images[0].URL)
	assert.Equal(t, []string{"services"}, images.folders)

	assert.True(t, httperr.IsBusiness(uc.DeleteImage(ctx, admin, svc.ID, 99), "image_not_found"))
	require.NoError(t, uc.DeleteImage(ctx, admin, svc.ID, got.Images[0].ID))

	images.err = media.ErrInvalidImage
	_, err = uc.AddImage(ctx, admin, svc.ID, "front", strings.NewReader("not an image"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}

func TestStylistCRUD(t *testing.T) {
	s := memory.New()
	uc := NewStylists(s.Catalog(), nil, nil, nil, time.Minute)
	ctx := context.Background()

	st, err := uc.Create(ctx, admin, CreateStylistInput{Name: "Lan", Email: " Lan@Salon.VN ", Salary: 9000000})
	require.NoError(t, err)
	assert.Equal(t, "lan@salon.vn", st.Email)
	assert.Equal(t, models.DefaultStylistImage, st.Image)

	_, err = uc.Create(ctx, admin, CreateStylistInput{Name: "Other", Email: "lan@salon.vn"})
	assert.True(t, httperr.IsBusiness(err, "email_taken"))

	mai, err := uc.Create(ctx, admin, CreateStylistInput{Name: "Mai", Email: "mai@salon.vn"})
	require.NoError(t, err)

	taken := "LAN@salon.vn"
	_, err = uc.Update(ctx, admin, mai.ID, UpdateStylistInput{Email: &taken})
	assert.True(t, httperr.IsBusiness(err, "email_taken"))

	salary := -1.0
	_, err = uc.Update(ctx, admin, mai.ID, UpdateStylistInput{Salary: &salary})
	assert.True(t, httperr.IsBusiness(err, "invalid_salary"))

	name := "Mai Anh"
	got, err := uc.Update(ctx, admin, mai.ID, UpdateStylistInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Mai Anh", got.Name)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.Create(ctx, admin, CreateStylistInput{Name: "X", Email: "not-an-email"})
	assert.True(t, httperr.IsBusiness(err, "invalid_email"))

	require.NoError(t, uc.Delete(ctx, admin, mai.ID))
	_, err = uc.Get(ctx, mai.ID)
	assert.True(t, httperr.IsBusiness(err, "stylist_not_found"))
}

func TestStylistInUse(t *testing.T) {
	s := memory.New()
	uc := NewStylists(s.Catalog(), nil, nil, nil, time.Minute)
	ctx := context.Background()

	st, err := uc.Create(ctx, admin, CreateStylistInput{Name: "Lan", Email: "lan@salon.vn"})
	require.NoError(t, err)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Slots().CreateSlot(ctx, &models.Slot{
		StylistID: st.ID, StartTime: start, EndTime: start.Add(time.Hour), Available: true,
	}))

	assert.True(t, httperr.IsBusiness(uc.Delete(ctx, admin, st.ID), "stylist_in_use"))
	assert.True(t, httperr.IsBusiness(uc.Delete(ctx, user, st.ID), "admin_only"))
}

func TestStylistImage(t *testing.T) {
	s := memory.New()
	images := &fakeImages{}
	c := newMapCache()
	uc := NewStylists(s.Catalog(), c, images, nil, time.Minute)
	ctx := context.Background()

	st, err := uc.Create(ctx, admin, CreateStylistInput{Name: "Lan", Email: "lan@salon.vn"})
	require.NoError(t, err)

	_, err = uc.Get(ctx, st.ID)
	require.NoError(t, err)

	got, err := uc.SetImage(ctx, admin, st.ID, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.salon.vn/stylists/x.webp", got.Image)

	cached, err := uc.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Image, cached.Image)

	images.err = errors.New("s3 down")
	_, err = uc.SetImage(ctx, admin, st.ID, strings.NewReader("x"))
	assert.EqualError(t, err, "s3 down")
}
