// Package businessflow contains the core business logic and use cases for account and taxonomy workflows
package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/simorgh-project/simorgh/app/dto"
	"github.com/simorgh-project/simorgh/models"
	"github.com/simorgh-project/simorgh/repository"
	"github.com/simorgh-project/simorgh/utils"
	"gorm.io/gorm"
)

// TagFlow handles the tag CRUD surface. Deletes are soft: removed tags
// disappear from every read path but keep their row.
type TagFlow interface {
	CreateTag(ctx context.Context, userID uint, request *dto.CreateTagRequest, metadata *ClientMetadata) (*dto.TagDTO, error)
	GetTag(ctx context.Context, tagID uint) (*dto.TagDTO, error)
	ListTags(ctx context.Context, request *dto.TagListRequest) (*dto.TagListResponse, error)
	ListPopularTags(ctx context.Context) ([]dto.TagDTO, error)
	UpdateTag(ctx context.Context, userID, tagID uint, request *dto.UpdateTagRequest, metadata *ClientMetadata) (*dto.TagDTO, error)
	DeleteTag(ctx context.Context, userID, tagID uint, metadata *ClientMetadata) error
}

// TagFlowImpl implements the tag business flow
type TagFlowImpl struct {
	tagRepo   repository.TagRepository
	auditRepo repository.AuditLogRepository
	db        *gorm.DB
}

// NewTagFlow creates a new tag flow instance
func NewTagFlow(
	tagRepo repository.TagRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) TagFlow {
	return &TagFlowImpl{
		tagRepo:   tagRepo,
		auditRepo: auditRepo,
		db:        db,
	}
}

// CreateTag creates a tag, deriving the slug from the name when omitted
func (tf *TagFlowImpl) CreateTag(ctx context.Context, userID uint, request *dto.CreateTagRequest, metadata *ClientMetadata) (*dto.TagDTO, error) {
	var created *models.Tag

	resp, err := withFlowTransaction(ctx, tf.db, func(ctx context.Context) (*dto.TagDTO, error) {
		name := strings.TrimSpace(request.Name)
		if name == "" {
			return nil, ErrTagNameRequired
		}

		slug := strings.TrimSpace(request.Slug)
		if slug == "" {
			slug = utils.Slugify(name)
		}

		existing, err := tf.tagRepo.ByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && !utils.IsTrue(existing.IsDeleted) {
			return nil, ErrTagNameAlreadyExists
		}

		existing, err = tf.tagRepo.BySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && !utils.IsTrue(existing.IsDeleted) {
			return nil, ErrSlugAlreadyExists
		}

		created = &models.Tag{
			Name:        name,
			Slug:        slug,
			Description: request.Description,
			IsDeleted:   utils.ToPtr(false),
		}
		if err := tf.tagRepo.Save(ctx, created); err != nil {
			return nil, err
		}

		out := ToTagDTO(*created)
		return &out, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Tag creation failed: %s", err.Error())
		_ = tf.logTagEvent(ctx, userID, models.AuditActionTagCreated, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("TAG_CREATE_FAILED", "Tag creation failed", err)
	}

	msg := fmt.Sprintf("Tag created: %d (%s)", resp.ID, resp.Name)
	_ = tf.logTagEvent(ctx, userID, models.AuditActionTagCreated, msg, true, nil, metadata)

	return resp, nil
}

// GetTag retrieves a single tag; soft-deleted tags read as missing
func (tf *TagFlowImpl) GetTag(ctx context.Context, tagID uint) (*dto.TagDTO, error) {
	tag, err := tf.tagRepo.ByID(ctx, tagID)
	if err != nil {
		return nil, NewBusinessError("TAG_FETCH_FAILED", "Failed to fetch tag", err)
	}
	if tag == nil || utils.IsTrue(tag.IsDeleted) {
		return nil, NewBusinessError("TAG_FETCH_FAILED", "Tag not found", ErrTagNotFound)
	}

	out := ToTagDTO(*tag)
	return &out, nil
}

// ListTags lists tags excluding soft-deleted rows
func (tf *TagFlowImpl) ListTags(ctx context.Context, request *dto.TagListRequest) (*dto.TagListResponse, error) {
	page, pageSize, err := NormalizePagination(request.Page, request.PageSize)
	if err != nil {
		return nil, NewBusinessError("TAG_LIST_VALIDATION_FAILED", "Invalid pagination", err)
	}

	filter := models.TagFilter{IsDeleted: utils.ToPtr(false)}
	if name := strings.TrimSpace(request.Name); name != "" {
		filter.Name = &name
	}
	if search := strings.TrimSpace(request.Search); search != "" {
		filter.Search = &search
	}

	orderBy := "name ASC"
	if request.OrderBy == "created_at" {
		orderBy = "created_at DESC"
	}

	total, err := tf.tagRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("TAG_LIST_FAILED", "Failed to list tags", err)
	}

	tags, err := tf.tagRepo.ByFilter(ctx, filter, orderBy, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("TAG_LIST_FAILED", "Failed to list tags", err)
	}

	items := make([]dto.TagDTO, 0, len(tags))
	for _, tag := range tags {
		items = append(items, ToTagDTO(*tag))
	}

	return &dto.TagListResponse{
		Items: items,
		Pagination: dto.PaginationDTO{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: TotalPages(total, pageSize),
		},
	}, nil
}

// ListPopularTags returns the first tags ordered by name
func (tf *TagFlowImpl) ListPopularTags(ctx context.Context) ([]dto.TagDTO, error) {
	tags, err := tf.tagRepo.ListPopular(ctx, utils.PopularTagsLimit)
	if err != nil {
		return nil, NewBusinessError("TAG_LIST_FAILED", "Failed to list popular tags", err)
	}

	items := make([]dto.TagDTO, 0, len(tags))
	for _, tag := range tags {
		items = append(items, ToTagDTO(*tag))
	}
	return items, nil
}

// UpdateTag applies partial updates to a tag
func (tf *TagFlowImpl) UpdateTag(ctx context.Context, userID, tagID uint, request *dto.UpdateTagRequest, metadata *ClientMetadata) (*dto.TagDTO, error) {
	resp, err := withFlowTransaction(ctx, tf.db, func(ctx context.Context) (*dto.TagDTO, error) {
		tag, err := tf.tagRepo.ByID(ctx, tagID)
		if err != nil {
			return nil, err
		}
		if tag == nil || utils.IsTrue(tag.IsDeleted) {
			return nil, ErrTagNotFound
		}

		if request.Name != nil {
			name := strings.TrimSpace(*request.Name)
			if name == "" {
				return nil, ErrTagNameRequired
			}
			if name != tag.Name {
				existing, err := tf.tagRepo.ByName(ctx, name)
				if err != nil {
					return nil, err
				}
				if existing != nil && existing.ID != tag.ID && !utils.IsTrue(existing.IsDeleted) {
					return nil, ErrTagNameAlreadyExists
				}
				tag.Name = name
			}
		}

		if request.Slug != nil {
			slug := strings.TrimSpace(*request.Slug)
			if slug == "" {
				slug = utils.Slugify(tag.Name)
			}
			if slug != tag.Slug {
				existing, err := tf.tagRepo.BySlug(ctx, slug)
				if err != nil {
					return nil, err
				}
				if existing != nil && existing.ID != tag.ID && !utils.IsTrue(existing.IsDeleted) {
					return nil, ErrSlugAlreadyExists
				}
				tag.Slug = slug
			}
		}

		if request.Description != nil {
			tag.Description = request.Description
		}

		if err := tf.tagRepo.Update(ctx, tag); err != nil {
			return nil, err
		}

		out := ToTagDTO(*tag)
		return &out, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Tag update failed: %s", err.Error())
		_ = tf.logTagEvent(ctx, userID, models.AuditActionTagUpdated, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("TAG_UPDATE_FAILED", "Tag update failed", err)
	}

	msg := fmt.Sprintf("Tag updated: %d", tagID)
	_ = tf.logTagEvent(ctx, userID, models.AuditActionTagUpdated, msg, true, nil, metadata)

	return resp, nil
}

// DeleteTag soft-deletes a tag
func (tf *TagFlowImpl) DeleteTag(ctx context.Context, userID, tagID uint, metadata *ClientMetadata) error {
	_, err := withFlowTransaction(ctx, tf.db, func(ctx context.Context) (*struct{}, error) {
		tag, err := tf.tagRepo.ByID(ctx, tagID)
		if err != nil {
			return nil, err
		}
		if tag == nil || utils.IsTrue(tag.IsDeleted) {
			return nil, ErrTagNotFound
		}

		if err := tf.tagRepo.SoftDelete(ctx, tag.ID); err != nil {
			return nil, err
		}

		return &struct{}{}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Tag deletion failed: %s", err.Error())
		_ = tf.logTagEvent(ctx, userID, models.AuditActionTagDeleted, errMsg, false, &errMsg, metadata)

		return NewBusinessError("TAG_DELETE_FAILED", "Tag deletion failed", err)
	}

	msg := fmt.Sprintf("Tag deleted: %d", tagID)
	_ = tf.logTagEvent(ctx, userID, models.AuditActionTagDeleted, msg, true, nil, metadata)

	return nil
}

func (tf *TagFlowImpl) logTagEvent(ctx context.Context, userID uint, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:       &userID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errMsg,
	}

	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		requestIDStr, ok := requestID.(string)
		if ok {
			audit.RequestID = &requestIDStr
		}
	}

	return tf.auditRepo.Save(ctx, audit)
}
