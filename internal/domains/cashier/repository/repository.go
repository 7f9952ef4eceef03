package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/internal/domains/cashier/model"
	gDto "resto/shared/dto"
	gRepo "resto/shared/repository"
)

type Cashier interface {
	Insert(ctx context.Context, model model.Cashier) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Cashier, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Cashier, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Cashier]
}

func New(db *postgres.Connection, otel otel.Otel) Cashier {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Cashier](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
