package service

import (
	"context"
	"os"
	"strconv"

	"iomd-notebook-be/internal/config"
	"iomd-notebook-be/internal/dto"
	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/pkg/logger"
	"iomd-notebook-be/internal/pkg/serverutils"
	"iomd-notebook-be/internal/repository/specification"
	"iomd-notebook-be/internal/repository/unitofwork"
	"iomd-notebook-be/pkg/names"

	gocache "github.com/patrickmn/go-cache"
)

const fallbackTemplate = `%% md
# New notebook

%% js
`

type INotebookService interface {
	Create(ctx context.Context, owner *entity.User, iomd string) (*entity.Notebook, error)
	Fork(ctx context.Context, owner *entity.User, revisionId int64) (*entity.Notebook, error)
	Detail(ctx context.Context, viewer *entity.User, notebookId int64, revisionParam string) (*dto.NotebookDetailResponse, error)
	Revisions(ctx context.Context, viewer *entity.User, notebookId int64) (*dto.RevisionListResponse, error)
	TryIt(viewer *entity.User, iomd string) *dto.TryItResponse
	DefaultContent() string
}

type notebookService struct {
	uowFactory    unitofwork.RepositoryFactory
	fileService   IFileService
	sourceService IFileSourceService
	renderService IRenderService
	limits        config.LimitsConfig
	templatePath  string
	cache         *gocache.Cache
	log           logger.ILogger
}

func NewNotebookService(
	uowFactory unitofwork.RepositoryFactory,
	fileService IFileService,
	sourceService IFileSourceService,
	renderService IRenderService,
	cfg *config.Config,
	log logger.ILogger,
) INotebookService {
	return &notebookService{
		uowFactory:    uowFactory,
		fileService:   fileService,
		sourceService: sourceService,
		renderService: renderService,
		limits:        cfg.Limits,
		templatePath:  cfg.App.TemplatePath,
		cache:         gocache.New(gocache.NoExpiration, 0),
		log:           log,
	}
}

// DefaultContent returns the IOMD template a fresh notebook starts from.
// The template file is read once and cached.
func (s *notebookService) DefaultContent() string {
	if cached, found := s.cache.Get("new_notebook_template"); found {
		return cached.(string)
	}

	content := fallbackTemplate
	if raw, err := os.ReadFile(s.templatePath); err == nil {
		content = string(raw)
	} else {
		s.log.Warn("notebook", "template file unreadable, using fallback", map[string]interface{}{
			"path":  s.templatePath,
			"error": err.Error(),
		})
	}
	s.cache.Set("new_notebook_template", content, gocache.NoExpiration)
	return content
}

func (s *notebookService) contentOrDefault(iomd string) string {
	if iomd != "" {
		return iomd
	}
	return s.DefaultContent()
}

// Create writes the notebook and its initial revision as one atomic unit.
// No reader can ever observe a notebook with zero revisions.
func (s *notebookService) Create(ctx context.Context, owner *entity.User, iomd string) (*entity.Notebook, error) {
	return s.create(ctx, owner, s.contentOrDefault(iomd), names.RandomCompound(), nil)
}

// Fork creates a new notebook whose lineage points at the given revision of
// another notebook, seeded with that revision's content and title.
func (s *notebookService) Fork(ctx context.Context, owner *entity.User, revisionId int64) (*entity.Notebook, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	source, err := uow.RevisionRepository().FindOne(ctx, specification.ByID{ID: revisionId})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, serverutils.NewNotFound("revision", "id=%d", revisionId)
	}

	return s.create(ctx, owner, source.Content, source.Title, &source.Id)
}

func (s *notebookService) create(ctx context.Context, owner *entity.User, content, title string, forkedFrom *int64) (*entity.Notebook, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ownerRecord, err := uow.UserRepository().FindOne(ctx, specification.ByUserID{ID: owner.Id})
	if err != nil {
		return nil, err
	}
	if ownerRecord == nil {
		return nil, serverutils.NewNotFound("user", "id=%s", owner.Id)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	notebook := entity.Notebook{
		OwnerId:    owner.Id,
		ForkedFrom: forkedFrom,
	}
	if err := uow.NotebookRepository().Create(ctx, &notebook); err != nil {
		return nil, err
	}

	revision := entity.NotebookRevision{
		NotebookId: notebook.Id,
		Title:      title,
		Content:    content,
		IsDraft:    true,
	}
	if err := uow.RevisionRepository().Create(ctx, &revision); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("notebook", "notebook created", map[string]interface{}{
		"notebook_id": notebook.Id,
		"owner":       owner.Id.String(),
		"title":       title,
	})
	return &notebook, nil
}

// resolveRevision returns the requested revision, or the latest one when no
// id was requested, plus whether the result is the latest. A non-integer id
// is a validation failure; an id that does not belong to this notebook is
// not found, even if it exists on another notebook.
func (s *notebookService) resolveRevision(ctx context.Context, uow unitofwork.UnitOfWork, notebookId int64, revisionParam string) (*entity.NotebookRevision, bool, error) {
	latest, err := uow.RevisionRepository().FindOne(ctx,
		specification.ByNotebookID{NotebookID: notebookId},
		specification.LatestRevisionFirst{},
	)
	if err != nil {
		return nil, false, err
	}
	if latest == nil {
		return nil, false, serverutils.NewCorruptState("notebook %d has no revisions", notebookId)
	}

	if revisionParam == "" {
		return latest, true, nil
	}

	revisionId, err := strconv.ParseInt(revisionParam, 10, 64)
	if err != nil {
		return nil, false, serverutils.NewValidation("Invalid revision id: %s", revisionParam)
	}

	revision, err := uow.RevisionRepository().FindOne(ctx,
		specification.ByID{ID: revisionId},
		specification.ByNotebookID{NotebookID: notebookId},
	)
	if err != nil {
		return nil, false, err
	}
	if revision == nil {
		return nil, false, serverutils.NewNotFound("revision", "id=%d for notebook %d", revisionId, notebookId)
	}

	return revision, revision.Id == latest.Id, nil
}

func (s *notebookService) Detail(ctx context.Context, viewer *entity.User, notebookId int64, revisionParam string) (*dto.NotebookDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: notebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NewNotFound("notebook", "id=%d", notebookId)
	}

	owner, err := uow.UserRepository().FindOne(ctx, specification.ByUserID{ID: notebook.OwnerId})
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, serverutils.NewNotFound("user", "id=%s", notebook.OwnerId)
	}

	revision, isLatest, err := s.resolveRevision(ctx, uow, notebookId, revisionParam)
	if err != nil {
		return nil, err
	}

	files, err := s.fileService.List(ctx, notebookId)
	if err != nil {
		return nil, err
	}
	sources, err := s.sourceService.List(ctx, viewer, notebookId)
	if err != nil {
		return nil, err
	}

	var forkedFrom interface{} = false
	if notebook.ForkedFrom != nil {
		forkedFrom = *notebook.ForkedFrom
	}

	return &dto.NotebookDetailResponse{
		Title:    revision.Title,
		UserInfo: userInfo(viewer),
		NotebookInfo: dto.NotebookInfo{
			Username:          owner.Username,
			UserCanSave:       notebook.CanEdit(viewer),
			NotebookId:        notebook.Id,
			RevisionId:        revision.Id,
			RevisionIsLatest:  isLatest,
			ConnectionMode:    "SERVER",
			Title:             revision.Title,
			MaxFilenameLength: s.limits.MaxFilenameLength,
			MaxFileSize:       s.limits.MaxFileSize,
			ForkedFrom:        forkedFrom,
			Files:             files,
			FileSources:       sources,
		},
		Iomd:            revision.Content,
		IframeSrc:       s.renderService.EvalFrameSrc(),
		EvalFrameOrigin: s.renderService.EvalFrameOrigin(),
	}, nil
}

func (s *notebookService) Revisions(ctx context.Context, viewer *entity.User, notebookId int64) (*dto.RevisionListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notebook, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: notebookId})
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, serverutils.NewNotFound("notebook", "id=%d", notebookId)
	}

	owner, err := uow.UserRepository().FindOne(ctx, specification.ByUserID{ID: notebook.OwnerId})
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, serverutils.NewNotFound("user", "id=%s", notebook.OwnerId)
	}

	latest, _, err := s.resolveRevision(ctx, uow, notebookId, "")
	if err != nil {
		return nil, err
	}

	ownerInfo := dto.OwnerInfo{
		Username:   owner.Username,
		FullName:   owner.FullName,
		Avatar:     avatarOf(owner),
		Title:      latest.Title,
		NotebookId: notebook.Id,
	}

	if notebook.ForkedFrom != nil {
		// Fork lineage points at a revision, so the origin notebook and
		// its owner are found by walking revision -> notebook -> owner.
		if err := s.fillForkOrigin(ctx, uow, *notebook.ForkedFrom, &ownerInfo); err != nil {
			return nil, err
		}
	}

	revisions, err := uow.RevisionRepository().FindAll(ctx,
		specification.ByNotebookID{NotebookID: notebookId},
		specification.LatestRevisionFirst{},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.RevisionSummary, 0, len(revisions))
	for _, r := range revisions {
		summaries = append(summaries, dto.RevisionSummary{
			Id:         r.Id,
			NotebookId: r.NotebookId,
			Title:      r.Title,
			Date:       r.CreatedAt,
		})
	}

	files, err := s.fileService.List(ctx, notebookId)
	if err != nil {
		return nil, err
	}

	return &dto.RevisionListResponse{
		Title:     "Revisions - " + latest.Title,
		UserInfo:  userInfo(viewer),
		OwnerInfo: ownerInfo,
		Revisions: summaries,
		Files:     files,
	}, nil
}

func (s *notebookService) fillForkOrigin(ctx context.Context, uow unitofwork.UnitOfWork, revisionId int64, info *dto.OwnerInfo) error {
	revision, err := uow.RevisionRepository().FindOne(ctx, specification.ByID{ID: revisionId})
	if err != nil {
		return err
	}
	if revision == nil {
		return serverutils.NewCorruptState("fork lineage references missing revision %d", revisionId)
	}

	origin, err := uow.NotebookRepository().FindOne(ctx, specification.ByID{ID: revision.NotebookId})
	if err != nil {
		return err
	}
	if origin == nil {
		return serverutils.NewCorruptState("revision %d references missing notebook %d", revision.Id, revision.NotebookId)
	}

	originOwner, err := uow.UserRepository().FindOne(ctx, specification.ByUserID{ID: origin.OwnerId})
	if err != nil {
		return err
	}
	if originOwner == nil {
		return serverutils.NewCorruptState("notebook %d references missing owner %s", origin.Id, origin.OwnerId)
	}

	info.ForkedFromTitle = revision.Title
	info.ForkedFromRevisionID = revision.Id
	info.ForkedFromNotebookID = origin.Id
	info.ForkedFromUsername = originOwner.Username
	return nil
}

// TryIt assembles the ephemeral unsaved notebook view for anonymous
// visitors. The supplied content is echoed verbatim; nothing is persisted.
func (s *notebookService) TryIt(viewer *entity.User, iomd string) *dto.TryItResponse {
	return &dto.TryItResponse{
		UserInfo: userInfo(viewer),
		NotebookInfo: dto.TryItInfo{
			ConnectionMode: "SERVER",
			TryItMode:      true,
			Title:          "Untitled notebook",
		},
		Iomd:            s.contentOrDefault(iomd),
		IframeSrc:       s.renderService.EvalFrameSrc(),
		EvalFrameOrigin: s.renderService.EvalFrameOrigin(),
	}
}

func userInfo(u *entity.User) dto.UserInfo {
	if u == nil || !u.Authenticated {
		return dto.UserInfo{}
	}
	return dto.UserInfo{
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   avatarOf(u),
	}
}

func avatarOf(u *entity.User) string {
	if u.AvatarURL != nil {
		return *u.AvatarURL
	}
	return ""
}
