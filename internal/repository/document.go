package repository

import (
	"context"

	"github.com/prompthost/prompthost/internal/entity"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) (*entity.Document, error)
	GetByID(ctx context.Context, workspaceID, id entity.ID) (*entity.Document, error)
}

type documentRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

func (r *documentRepositoryImpl) Create(ctx context.Context, doc *entity.Document) (*entity.Document, error) {
	var model Document
	model.FromEntity(doc)
	if err := gorm.G[Document](r.db).Create(ctx, &model); err != nil {
		return nil, asEntityErr(err)
	}
	return model.ToEntity(), nil
}

func (r *documentRepositoryImpl) GetByID(ctx context.Context, workspaceID, id entity.ID) (*entity.Document, error) {
	found, err := gorm.G[Document](r.db).
		Where("id = ? AND workspace_id = ?", id.Uint(), workspaceID.Uint()).
		First(ctx)
	if err != nil {
		return nil, asEntityErr(err)
	}
	return found.ToEntity(), nil
}
