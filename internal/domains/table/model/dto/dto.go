package dto

import (
	"strings"

	"resto/internal/domains/table/model"
	"resto/shared"
	gDto "resto/shared/dto"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	Label     string `json:"label"     validate:"notblank,max=50"`
	Capacity  int    `json:"capacity"  validate:"min=1,max=100"`
	Available *bool  `json:"available" validate:"omitempty"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Table{
		ID:        uuid.NewString(),
		Label:     strings.TrimSpace(c.Label),
		Capacity:  c.Capacity,
		Available: available,
		Metadata:  gDto.NewMetadata(user),
	}
}

type UpdateTableRequest struct {
	Label    *string `db:"label"    json:"label"    validate:"omitempty,notblank,max=50"`
	Capacity *int    `db:"capacity" json:"capacity" validate:"omitempty,min=1,max=100"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type TableResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.Label = model.Label
	r.Capacity = model.Capacity
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"totalPage"`
	TotalData int             `json:"totalData"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
