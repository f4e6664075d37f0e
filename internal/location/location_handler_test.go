package location_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jagatraya2508/absensi/internal/location"
	locationerrors "github.com/jagatraya2508/absensi/internal/location/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLocationService struct {
	CreateFn     func(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error)
	GetAllFn     func(ctx context.Context) ([]location.LocationResponse, error)
	GetByIDFn    func(ctx context.Context, id string) (location.LocationResponse, error)
	UpdateFn     func(ctx context.Context, id string, req location.UpdateLocationRequest) (location.LocationResponse, error)
	DeleteFn     func(ctx context.Context, id string) error
	ListActiveFn func(ctx context.Context) ([]location.Location, error)
}

func (f *fakeLocationService) Create(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeLocationService) GetAll(ctx context.Context) ([]location.LocationResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeLocationService) GetByID(ctx context.Context, id string) (location.LocationResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeLocationService) Update(ctx context.Context, id string, req location.UpdateLocationRequest) (location.LocationResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeLocationService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeLocationService) ListActive(ctx context.Context) ([]location.Location, error) {
	return f.ListActiveFn(ctx)
}

func newJSONContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestLocationHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLocationService{
			CreateFn: func(ctx context.Context, req location.CreateLocationRequest) (location.LocationResponse, error) {
				assert.Equal(t, "Kantor Pusat", req.Name)
				assert.Equal(t, -6.2, *req.Latitude)
				return location.LocationResponse{ID: uuid.NewString(), Name: req.Name}, nil
			},
		}
		c, w := newJSONContext(http.MethodPost, "/locations", `{"name":"Kantor Pusat","latitude":-6.2,"longitude":106.8166}`)

		location.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative missing coordinates", func(t *testing.T) {
		c, w := newJSONContext(http.MethodPost, "/locations", `{"name":"Kantor Pusat"}`)

		location.NewHandler(&fakeLocationService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["ok"])
	})

	t.Run("negative latitude out of range", func(t *testing.T) {
		c, w := newJSONContext(http.MethodPost, "/locations", `{"name":"X","latitude":-120,"longitude":106.8}`)

		location.NewHandler(&fakeLocationService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLocationHandler_GetByID(t *testing.T) {
	t.Run("negative not found", func(t *testing.T) {
		svc := &fakeLocationService{
			GetByIDFn: func(ctx context.Context, id string) (location.LocationResponse, error) {
				return location.LocationResponse{}, locationerrors.ErrLocationNotFound
			},
		}
		c, w := newJSONContext(http.MethodGet, "/locations/x", "")
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		location.NewHandler(svc).GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("negative internal error", func(t *testing.T) {
		svc := &fakeLocationService{
			GetByIDFn: func(ctx context.Context, id string) (location.LocationResponse, error) {
				return location.LocationResponse{}, errors.New("db down")
			},
		}
		c, w := newJSONContext(http.MethodGet, "/locations/x", "")

		location.NewHandler(svc).GetByID(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestLocationHandler_GetActive(t *testing.T) {
	svc := &fakeLocationService{
		ListActiveFn: func(ctx context.Context) ([]location.Location, error) {
			return []location.Location{{ID: uuid.New(), Name: "Kantor Pusat", RadiusMeters: 100, IsActive: true}}, nil
		},
	}
	c, w := newJSONContext(http.MethodGet, "/locations/active", "")

	location.NewHandler(svc).GetActive(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kantor Pusat")
}

func TestLocationHandler_Delete(t *testing.T) {
	svc := &fakeLocationService{
		DeleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	}
	c, w := newJSONContext(http.MethodDelete, "/locations/x", "")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	location.NewHandler(svc).Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
