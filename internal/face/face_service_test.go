package face_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jagatraya2508/absensi/internal/domain"
	"github.com/jagatraya2508/absensi/internal/face"
	faceerrors "github.com/jagatraya2508/absensi/internal/face/errors"
	"github.com/jagatraya2508/absensi/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeFaceRepository struct {
	findByIDFn        func(ctx context.Context, userID string) (*face.UserFace, error)
	findAllFn         func(ctx context.Context) ([]face.UserFace, error)
	saveDescriptorFn  func(ctx context.Context, userID string, d face.Descriptor, at time.Time, onlyIfEmpty bool) (bool, error)
	clearDescriptorFn func(ctx context.Context, userID string) (bool, error)
}

func (f *fakeFaceRepository) FindByID(ctx context.Context, userID string) (*face.UserFace, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFaceRepository) FindAll(ctx context.Context) ([]face.UserFace, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeFaceRepository) SaveDescriptor(ctx context.Context, userID string, d face.Descriptor, at time.Time, onlyIfEmpty bool) (bool, error) {
	if f.saveDescriptorFn != nil {
		return f.saveDescriptorFn(ctx, userID, d, at, onlyIfEmpty)
	}
	return true, nil
}

func (f *fakeFaceRepository) ClearDescriptor(ctx context.Context, userID string) (bool, error) {
	if f.clearDescriptorFn != nil {
		return f.clearDescriptorFn(ctx, userID)
	}
	return true, nil
}

func userWith(id string, d face.Descriptor) func(ctx context.Context, userID string) (*face.UserFace, error) {
	return func(ctx context.Context, userID string) (*face.UserFace, error) {
		return &face.UserFace{ID: uuid.MustParse(id), Name: "Budi", FaceDescriptor: d}, nil
	}
}

func TestFaceService_RegisterSelf(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	identity := domain.Identity{UserID: userID, Role: domain.RoleEmployee}

	t.Run("success", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: userWith(userID, nil)}
		repo.saveDescriptorFn = func(ctx context.Context, uid string, d face.Descriptor, at time.Time, onlyIfEmpty bool) (bool, error) {
			assert.Equal(t, userID, uid)
			assert.Len(t, d, face.DescriptorLength)
			assert.True(t, onlyIfEmpty)
			return true, nil
		}

		resp, err := face.NewService(repo).RegisterSelf(ctx, identity, filled(0.2))

		assert.NoError(t, err)
		assert.True(t, resp.HasFace)
		assert.NotNil(t, resp.RegisteredAt)
	})

	t.Run("negative invalid length checked first", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: func(ctx context.Context, userID string) (*face.UserFace, error) {
			t.Fatal("repository must not be called")
			return nil, nil
		}}

		_, err := face.NewService(repo).RegisterSelf(ctx, identity, make(face.Descriptor, 10))

		assert.ErrorIs(t, err, faceerrors.ErrInvalidDescriptorLength)
		assert.Equal(t, apperror.CodeInvalidDescriptorLength, apperror.ToHTTP(err).Code)
	})

	t.Run("negative already registered", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: userWith(userID, filled(0.1))}

		_, err := face.NewService(repo).RegisterSelf(ctx, identity, filled(0.2))

		assert.ErrorIs(t, err, faceerrors.ErrAlreadyRegistered)
	})

	t.Run("negative concurrent registration wins race", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: userWith(userID, nil)}
		repo.saveDescriptorFn = func(ctx context.Context, uid string, d face.Descriptor, at time.Time, onlyIfEmpty bool) (bool, error) {
			return false, nil
		}

		_, err := face.NewService(repo).RegisterSelf(ctx, identity, filled(0.2))

		assert.ErrorIs(t, err, faceerrors.ErrAlreadyRegistered)
	})
}

func TestFaceService_RegisterForUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("success overwrites existing profile", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: userWith(userID, filled(0.1))}
		repo.saveDescriptorFn = func(ctx context.Context, uid string, d face.Descriptor, at time.Time, onlyIfEmpty bool) (bool, error) {
			assert.False(t, onlyIfEmpty)
			return true, nil
		}

		resp, err := face.NewService(repo).RegisterForUser(ctx, userID, filled(0.3))

		assert.NoError(t, err)
		assert.Equal(t, userID, resp.UserID)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		repo := &fakeFaceRepository{}

		_, err := face.NewService(repo).RegisterForUser(ctx, userID, filled(0.3))

		assert.ErrorIs(t, err, faceerrors.ErrUserNotFound)
	})
}

func TestFaceService_Verify(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	otherID := uuid.NewString()
	stored := filled(0.1)

	t.Run("success against own profile", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: func(ctx context.Context, uid string) (*face.UserFace, error) {
			assert.Equal(t, userID, uid)
			return &face.UserFace{ID: uuid.MustParse(uid), FaceDescriptor: stored}, nil
		}}

		r, err := face.NewService(repo).Verify(ctx, domain.Identity{UserID: userID}, face.VerifyFaceRequest{
			Descriptor: offsetFirst(stored, 0.2),
		})

		assert.NoError(t, err)
		assert.True(t, r.Match)
		assert.Equal(t, 80, r.SimilarityPercent)
	})

	t.Run("success without profile reports no match", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: userWith(userID, nil)}

		r, err := face.NewService(repo).Verify(ctx, domain.Identity{UserID: userID}, face.VerifyFaceRequest{Descriptor: stored})

		assert.NoError(t, err)
		assert.Equal(t, face.MatchResult{Distance: 1}, r)
	})

	t.Run("admin may target another user", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: func(ctx context.Context, uid string) (*face.UserFace, error) {
			assert.Equal(t, otherID, uid)
			return &face.UserFace{ID: uuid.MustParse(uid), FaceDescriptor: stored}, nil
		}}

		_, err := face.NewService(repo).Verify(ctx, domain.Identity{UserID: userID, Role: domain.RoleAdmin}, face.VerifyFaceRequest{
			Descriptor: stored,
			UserID:     otherID,
		})
		assert.NoError(t, err)
	})

	t.Run("employee target is ignored", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: func(ctx context.Context, uid string) (*face.UserFace, error) {
			assert.Equal(t, userID, uid)
			return &face.UserFace{ID: uuid.MustParse(uid), FaceDescriptor: stored}, nil
		}}

		_, err := face.NewService(repo).Verify(ctx, domain.Identity{UserID: userID, Role: domain.RoleEmployee}, face.VerifyFaceRequest{
			Descriptor: stored,
			UserID:     otherID,
		})
		assert.NoError(t, err)
	})

	t.Run("pair comparison skips repository", func(t *testing.T) {
		r, err := face.NewService(&fakeFaceRepository{}).Verify(ctx, domain.Identity{UserID: userID}, face.VerifyFaceRequest{
			DescriptorA: stored,
			DescriptorB: offsetFirst(stored, 0.9),
		})

		assert.NoError(t, err)
		assert.False(t, r.Match)
		assert.Equal(t, 10, r.SimilarityPercent)
	})

	t.Run("negative missing descriptor", func(t *testing.T) {
		_, err := face.NewService(&fakeFaceRepository{}).Verify(ctx, domain.Identity{UserID: userID}, face.VerifyFaceRequest{})

		assert.ErrorIs(t, err, faceerrors.ErrDescriptorRequired)
	})
}

func TestFaceService_VerifyForCheckIn(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	stored := filled(0.1)

	t.Run("success no descriptor sent", func(t *testing.T) {
		assert.NoError(t, face.NewService(&fakeFaceRepository{}).VerifyForCheckIn(ctx, userID, nil))
	})

	t.Run("success no profile stored", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: userWith(userID, nil)}
		assert.NoError(t, face.NewService(repo).VerifyForCheckIn(ctx, userID, stored))
	})

	t.Run("success match", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: userWith(userID, stored)}
		assert.NoError(t, face.NewService(repo).VerifyForCheckIn(ctx, userID, offsetFirst(stored, 0.1)))
	})

	t.Run("negative mismatch reports similarity", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: userWith(userID, stored)}

		err := face.NewService(repo).VerifyForCheckIn(ctx, userID, offsetFirst(stored, 0.75))

		assert.ErrorIs(t, err, faceerrors.ErrFaceMismatch)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, apperror.CodeValidationFailed, httpErr.Code)
		assert.Equal(t, "Wajah tidak cocok (kemiripan 25%, minimal 40%)", httpErr.Message)
	})

	t.Run("negative repository failure", func(t *testing.T) {
		repo := &fakeFaceRepository{findByIDFn: func(ctx context.Context, uid string) (*face.UserFace, error) {
			return nil, errors.New("db down")
		}}

		assert.Error(t, face.NewService(repo).VerifyForCheckIn(ctx, userID, stored))
	})
}

func TestFaceService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		assert.NoError(t, face.NewService(&fakeFaceRepository{}).Delete(ctx, uuid.NewString()))
	})

	t.Run("negative unknown user", func(t *testing.T) {
		repo := &fakeFaceRepository{clearDescriptorFn: func(ctx context.Context, userID string) (bool, error) {
			return false, nil
		}}
		assert.ErrorIs(t, face.NewService(repo).Delete(ctx, uuid.NewString()), faceerrors.ErrUserNotFound)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		assert.ErrorIs(t, face.NewService(&fakeFaceRepository{}).Delete(ctx, "nope"), faceerrors.ErrInvalidUserID)
	})
}
