package dto

import (
	"strings"
	"time"

	"resto/internal/domains/cashier/model"
	"resto/shared"
	gDto "resto/shared/dto"

	"github.com/google/uuid"
)

type CreateCashierRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=50"`
	Name     string `json:"name"     validate:"notblank,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (c *CreateCashierRequest) ToModel(hashedPassword, user string) model.Cashier {
	return model.Cashier{
		ID:       uuid.NewString(),
		Username: strings.ToLower(c.Username),
		Name:     strings.TrimSpace(c.Name),
		Password: hashedPassword,
		Active:   true,
		Metadata: gDto.NewMetadata(user),
	}
}

// UpdateCashierRequest carries a plain password; the service swaps in its hash.
type UpdateCashierRequest struct {
	Name     *string `db:"name"     json:"name"     validate:"omitempty,notblank,max=100"`
	Active   *bool   `db:"active"   json:"active"`
	Password *string `db:"password" json:"password" validate:"omitempty,min=8,max=72"`
}

type CashierResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"lastLogin"`
	gDto.Metadata
}

func (r *CashierResponse) FromModel(model model.Cashier) {
	r.ID = model.ID
	r.Username = model.Username
	r.Name = model.Name
	r.Active = model.Active
	r.LastLogin = model.LastLogin
	r.Metadata.FromModel(model.Metadata)
}

type GetCashiersResponse struct {
	Cashiers  []CashierResponse `json:"cashiers"`
	TotalPage int               `json:"totalPage"`
	TotalData int               `json:"totalData"`
}

func (r *GetCashiersResponse) FromModels(models []model.Cashier, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cashiers = make([]CashierResponse, len(models))
	for i, mod := range models {
		r.Cashiers[i].FromModel(mod)
	}
}
