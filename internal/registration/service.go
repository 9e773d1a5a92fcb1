package registration

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nerdshive/membership-portal/internal/models"
)

// IdentityCreator описывает контракт создания учётной записи из черновика.
type IdentityCreator interface {
	// CreateIdentity сохраняет нового пользователя со статусом pending
	// и возвращает его UID.
	CreateIdentity(ctx context.Context, user models.User, rawPassword string) (string, error)
}

// Service управляет жизненным циклом регистрационных черновиков.
type Service struct {
	drafts     DraftStore
	identities IdentityCreator
	log        *slog.Logger
}

// NewService создает новый Service.
func NewService(drafts DraftStore, identities IdentityCreator, log *slog.Logger) *Service {
	return &Service{
		drafts:     drafts,
		identities: identities,
		log:        log,
	}
}

// Start создает пустой черновик на первом шаге и сохраняет его.
func (s *Service) Start(ctx context.Context) (*Draft, error) {
	draft := NewDraft(uuid.NewString())
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.log.Info("registration draft started", slog.String("draft_id", draft.ID))
	return draft, nil
}

// Get возвращает черновик по ID.
func (s *Service) Get(ctx context.Context, id string) (*Draft, error) {
	return s.drafts.Get(ctx, id)
}

// UpdateField записывает значение поля черновика и сохраняет его.
func (s *Service) UpdateField(ctx context.Context, id, field string, value any) (*Draft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := draft.SetField(field, value); err != nil {
		return nil, err
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Next проверяет текущий шаг черновика и продвигает его при успехе.
func (s *Service) Next(ctx context.Context, id string) (*Draft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	draft.Next()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Previous возвращает черновик на предыдущий шаг, сбрасывая ошибки.
func (s *Service) Previous(ctx context.Context, id string) (*Draft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	draft.Previous()
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// AttachDocument прикрепляет загруженный документ к черновику. Нарушение
// ограничений на файл оставляет прежнюю ссылку и записывает ошибку поля.
func (s *Service) AttachDocument(ctx context.Context, id string, ref FileRef) (*Draft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	draft.AttachFile(ref)
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Submit повторно проверяет последний шаг и создает учётную запись со
// статусом pending. При успехе черновик удаляется; при отказе хранилища
// черновик сохраняется без изменений, и отправку можно повторить.
func (s *Service) Submit(ctx context.Context, id string) (string, *Draft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}

	if errs := draft.validateStep(StepOrganizationalDetails); len(errs) > 0 {
		draft.Errors = errs
		if err := s.drafts.Save(ctx, draft); err != nil {
			return "", nil, err
		}
		return "", draft, nil
	}

	user := models.User{
		Email:              draft.Email,
		FullName:           draft.FullName,
		Role:               models.RoleUser,
		Status:             models.UserStatusPending,
		Phone:              draft.Mobile,
		Gender:             draft.Gender,
		City:               draft.City,
		Location:           draft.Location,
		Occupation:         draft.Occupation,
		IDType:             draft.IDType,
		IDNumber:           draft.IDNumber,
		NeedsReimbursement: draft.NeedsReimbursement,
	}
	if draft.IDFile != nil {
		user.IDFileURL = draft.IDFile.URL
	}
	if draft.NeedsReimbursement {
		user.OrganizationName = draft.OrganizationName
		user.GSTNumber = draft.GSTNumber
		user.OrganizationLocation = draft.OrganizationLocation
	}

	userUID, err := s.identities.CreateIdentity(ctx, user, draft.Password)
	if err != nil {
		return "", draft, err
	}

	if err := s.drafts.Delete(ctx, id); err != nil {
		// Учётная запись уже создана; истечение TTL доберет черновик.
		s.log.Warn("failed to delete submitted draft", slog.String("draft_id", id))
	}

	s.log.Info("registration submitted",
		slog.String("draft_id", id), slog.String("user_uid", userUID))
	return userUID, nil, nil
}
