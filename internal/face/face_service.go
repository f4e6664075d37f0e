package face

import (
	"context"
	"errors"
	"time"

	"github.com/jagatraya2508/absensi/internal/domain"
	faceerrors "github.com/jagatraya2508/absensi/internal/face/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=face_service.go -destination=mock/face_service_mock.go -package=mock
type Service interface {
	RegisterSelf(ctx context.Context, identity domain.Identity, d Descriptor) (FaceStatusResponse, error)
	RegisterForUser(ctx context.Context, userID string, d Descriptor) (FaceStatusResponse, error)
	Status(ctx context.Context, identity domain.Identity) (FaceStatusResponse, error)
	MyDescriptor(ctx context.Context, identity domain.Identity) (DescriptorResponse, error)
	ListUsers(ctx context.Context) ([]UserFaceResponse, error)
	Delete(ctx context.Context, userID string) error
	Verify(ctx context.Context, identity domain.Identity, req VerifyFaceRequest) (MatchResult, error)
	VerifyForCheckIn(ctx context.Context, userID string, d Descriptor) error
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("face.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("face.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

func (s *service) RegisterSelf(ctx context.Context, identity domain.Identity, d Descriptor) (FaceStatusResponse, error) {
	s.logger.Debug("register face requested", zap.String("user_id", identity.UserID))

	if err := ValidateDescriptor(d); err != nil {
		return FaceStatusResponse{}, err
	}

	u, err := s.find(ctx, identity.UserID)
	if err != nil {
		return FaceStatusResponse{}, err
	}
	if u.HasFace() {
		s.logger.Warn("register face rejected, already registered", zap.String("user_id", identity.UserID))
		return FaceStatusResponse{}, faceerrors.ErrAlreadyRegistered
	}

	registeredAt := s.now().UTC()
	saved, err := s.repo.SaveDescriptor(ctx, identity.UserID, d, registeredAt, true)
	if err != nil {
		s.logger.Error("register face persist failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return FaceStatusResponse{}, err
	}
	if !saved {
		return FaceStatusResponse{}, faceerrors.ErrAlreadyRegistered
	}

	s.logger.Info("register face success", zap.String("user_id", identity.UserID))
	return statusResponse(identity.UserID, true, &registeredAt), nil
}

func (s *service) RegisterForUser(ctx context.Context, userID string, d Descriptor) (FaceStatusResponse, error) {
	s.logger.Debug("admin register face requested", zap.String("user_id", userID))

	if err := ValidateDescriptor(d); err != nil {
		return FaceStatusResponse{}, err
	}
	if _, err := s.find(ctx, userID); err != nil {
		return FaceStatusResponse{}, err
	}

	registeredAt := s.now().UTC()
	if _, err := s.repo.SaveDescriptor(ctx, userID, d, registeredAt, false); err != nil {
		s.logger.Error("admin register face persist failed", zap.String("user_id", userID), zap.Error(err))
		return FaceStatusResponse{}, err
	}

	s.logger.Info("admin register face success", zap.String("user_id", userID))
	return statusResponse(userID, true, &registeredAt), nil
}

func (s *service) Status(ctx context.Context, identity domain.Identity) (FaceStatusResponse, error) {
	u, err := s.find(ctx, identity.UserID)
	if err != nil {
		return FaceStatusResponse{}, err
	}
	return statusResponse(identity.UserID, u.HasFace(), u.FaceRegisteredAt), nil
}

func (s *service) MyDescriptor(ctx context.Context, identity domain.Identity) (DescriptorResponse, error) {
	u, err := s.find(ctx, identity.UserID)
	if err != nil {
		return DescriptorResponse{}, err
	}
	if !u.HasFace() {
		return DescriptorResponse{}, faceerrors.ErrNotRegistered
	}
	return DescriptorResponse{UserID: identity.UserID, Descriptor: u.FaceDescriptor}, nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserFaceResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list face users failed", zap.Error(err))
		return nil, err
	}

	resp := make([]UserFaceResponse, len(users))
	for i, u := range users {
		resp[i] = UserFaceResponse{
			ID:           u.ID.String(),
			Name:         u.Name,
			Email:        u.Email,
			HasFace:      u.HasFace(),
			RegisteredAt: formatTime(u.FaceRegisteredAt),
		}
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return faceerrors.ErrInvalidUserID
	}

	cleared, err := s.repo.ClearDescriptor(ctx, userID)
	if err != nil {
		s.logger.Error("delete face failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	if !cleared {
		return faceerrors.ErrUserNotFound
	}

	s.logger.Info("delete face success", zap.String("user_id", userID))
	return nil
}

func (s *service) Verify(ctx context.Context, identity domain.Identity, req VerifyFaceRequest) (MatchResult, error) {
	if req.DescriptorA != nil || req.DescriptorB != nil {
		if err := ValidateDescriptor(req.DescriptorA); err != nil {
			return MatchResult{}, err
		}
		if err := ValidateDescriptor(req.DescriptorB); err != nil {
			return MatchResult{}, err
		}
		return Compare(req.DescriptorA, req.DescriptorB), nil
	}

	if req.Descriptor == nil {
		return MatchResult{}, faceerrors.ErrDescriptorRequired
	}
	if err := ValidateDescriptor(req.Descriptor); err != nil {
		return MatchResult{}, err
	}

	target := identity.UserID
	if req.UserID != "" && identity.IsAdmin() {
		target = req.UserID
	}

	u, err := s.find(ctx, target)
	if err != nil {
		return MatchResult{}, err
	}

	result := Compare(req.Descriptor, u.FaceDescriptor)
	s.logger.Debug("verify face result",
		zap.String("user_id", target),
		zap.Bool("match", result.Match),
		zap.Int("similarity", result.SimilarityPercent),
	)
	return result, nil
}

// VerifyForCheckIn gates an attendance submission. It passes when no
// descriptor was sent or the user has no stored profile.
func (s *service) VerifyForCheckIn(ctx context.Context, userID string, d Descriptor) error {
	if d == nil {
		return nil
	}
	if err := ValidateDescriptor(d); err != nil {
		return err
	}

	u, err := s.find(ctx, userID)
	if err != nil {
		if errors.Is(err, faceerrors.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if !u.HasFace() {
		return nil
	}

	result := Compare(d, u.FaceDescriptor)
	if !result.Match {
		s.logger.Warn("check-in face mismatch",
			zap.String("user_id", userID),
			zap.Float64("distance", result.Distance),
			zap.Int("similarity", result.SimilarityPercent),
		)
		return faceerrors.FaceMismatch(result.SimilarityPercent, MinimumSimilarityPercent)
	}
	return nil
}

func (s *service) find(ctx context.Context, userID string) (*UserFace, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, faceerrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faceerrors.ErrUserNotFound
		}
		s.logger.Error("find face user failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return u, nil
}

func statusResponse(userID string, hasFace bool, registeredAt *time.Time) FaceStatusResponse {
	return FaceStatusResponse{
		UserID:       userID,
		HasFace:      hasFace,
		RegisteredAt: formatTime(registeredAt),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
