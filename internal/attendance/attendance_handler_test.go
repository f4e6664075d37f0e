package attendance_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jagatraya2508/absensi/internal/attendance"
	attendanceerrors "github.com/jagatraya2508/absensi/internal/attendance/errors"
	"github.com/jagatraya2508/absensi/internal/domain"
	"github.com/jagatraya2508/absensi/internal/middleware"
	"github.com/jagatraya2508/absensi/internal/storage"
	storageMock "github.com/jagatraya2508/absensi/internal/storage/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeAttendanceService struct {
	checkInFn  func(ctx context.Context, identity domain.Identity, req attendance.SubmitRequest) (attendance.SubmitResponse, error)
	checkOutFn func(ctx context.Context, identity domain.Identity, req attendance.SubmitRequest) (attendance.SubmitResponse, error)
	todayFn    func(ctx context.Context, identity domain.Identity) (attendance.TodayResponse, error)
	historyFn  func(ctx context.Context, identity domain.Identity, filter attendance.HistoryFilter) ([]attendance.HistoryRecord, error)
	deleteFn   func(ctx context.Context, identity domain.Identity, id string) error
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, identity domain.Identity, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
	return f.checkInFn(ctx, identity, req)
}
func (f *fakeAttendanceService) CheckOut(ctx context.Context, identity domain.Identity, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
	return f.checkOutFn(ctx, identity, req)
}
func (f *fakeAttendanceService) Today(ctx context.Context, identity domain.Identity) (attendance.TodayResponse, error) {
	return f.todayFn(ctx, identity)
}
func (f *fakeAttendanceService) History(ctx context.Context, identity domain.Identity, filter attendance.HistoryFilter) ([]attendance.HistoryRecord, error) {
	return f.historyFn(ctx, identity, filter)
}
func (f *fakeAttendanceService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	return f.deleteFn(ctx, identity, id)
}

var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func multipartSubmit(t *testing.T, fields map[string]string, withPhoto bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		assert.NoError(t, w.WriteField(k, v))
	}
	if withPhoto {
		part, err := w.CreateFormFile("photo", "selfie.jpg")
		assert.NoError(t, err)
		_, err = part.Write(jpegHeader)
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func newSubmitContext(t *testing.T, fields map[string]string, withPhoto bool) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	body, contentType := multipartSubmit(t, fields, withPhoto)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/check-in", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Set(middleware.ContextUserID, uuid.NewString())
	c.Set(middleware.ContextRole, domain.RoleEmployee)
	return c, w
}

func TestAttendanceHandler_CheckIn(t *testing.T) {
	coords := map[string]string{"latitude": "-6.175392", "longitude": "106.827153"}

	t.Run("success stores photo and passes reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storageMock.NewMockStore(ctrl)
		store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, upload storage.Upload) (string, error) {
			assert.Equal(t, storage.FolderAttendance, upload.Folder)
			return "attendance/u_1_x.jpg", nil
		})

		svc := &fakeAttendanceService{
			checkInFn: func(ctx context.Context, identity domain.Identity, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
				assert.Equal(t, "attendance/u_1_x.jpg", req.PhotoRef)
				assert.Equal(t, -6.175392, *req.Latitude)
				assert.Len(t, req.FaceDescriptor, 2)
				return attendance.SubmitResponse{Message: "Check-in berhasil"}, nil
			},
		}

		fields := map[string]string{"face_descriptor": "[0.1,0.2]"}
		for k, v := range coords {
			fields[k] = v
		}
		c, w := newSubmitContext(t, fields, true)

		attendance.NewHandler(svc, store).CheckIn(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative rejected submission removes stored photo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storageMock.NewMockStore(ctrl)
		store.EXPECT().Save(gomock.Any(), gomock.Any()).Return("attendance/u_1_x.jpg", nil)
		store.EXPECT().Delete(gomock.Any(), "attendance/u_1_x.jpg").Return(nil)

		svc := &fakeAttendanceService{
			checkInFn: func(ctx context.Context, identity domain.Identity, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
				return attendance.SubmitResponse{}, attendanceerrors.ErrAlreadyCheckedIn
			},
		}
		c, w := newSubmitContext(t, coords, true)

		attendance.NewHandler(svc, store).CheckIn(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "DUPLICATE_OPERATION")
	})

	t.Run("negative missing photo reaches gate without upload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storageMock.NewMockStore(ctrl)

		svc := &fakeAttendanceService{
			checkInFn: func(ctx context.Context, identity domain.Identity, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
				assert.Empty(t, req.PhotoRef)
				return attendance.SubmitResponse{}, attendanceerrors.ErrMissingPhoto
			},
		}
		c, w := newSubmitContext(t, coords, false)

		attendance.NewHandler(svc, store).CheckIn(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
	})

	t.Run("negative malformed descriptor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := storageMock.NewMockStore(ctrl)

		c, w := newSubmitContext(t, map[string]string{"face_descriptor": "not-json"}, true)

		attendance.NewHandler(&fakeAttendanceService{}, store).CheckIn(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAttendanceHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAttendanceService{
		deleteFn: func(ctx context.Context, identity domain.Identity, id string) error {
			assert.Equal(t, domain.RoleEmployee, identity.Role)
			return attendanceerrors.ErrDeleteForbidden
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/attendance/x", nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	c.Set(middleware.ContextUserID, uuid.NewString())
	c.Set(middleware.ContextRole, domain.RoleEmployee)

	attendance.NewHandler(svc, nil).Delete(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
