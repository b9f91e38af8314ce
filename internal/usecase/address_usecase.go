package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"fastfood/internal/domain/model"
	repo "fastfood/internal/repository"
)

type AddressDTO struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customer_id"`
	Street     string  `json:"street"`
	Ward       string  `json:"ward"`
	District   string  `json:"district"`
	City       string  `json:"city"`
	IsDefault  bool    `json:"is_default"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  *string `json:"updated_at,omitempty"`
}

type AddressRequest struct {
	Street   string `json:"street"`
	Ward     string `json:"ward"`
	District string `json:"district"`
	City     string `json:"city"`
}

type AddressUsecase struct {
	customers repo.CustomerRepository
	addresses repo.AddressRepository
	now       func() time.Time
}

func NewAddressUsecase(customers repo.CustomerRepository, addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{customers: customers, addresses: addresses, now: time.Now}
}

func (u *AddressUsecase) List(ctx context.Context, p model.Principal) ([]AddressDTO, error) {
	c, err := customerOf(ctx, u.customers, p)
	if err != nil {
		return nil, err
	}

	list, err := u.addresses.ListByCustomerID(ctx, c.ID)
	if err != nil {
		return nil, errDB()
	}

	out := make([]AddressDTO, 0, len(list))
	for i := range list {
		out = append(out, toAddressDTO(&list[i]))
	}
	return out, nil
}

func (u *AddressUsecase) Create(ctx context.Context, p model.Principal, req AddressRequest) (AddressDTO, error) {
	c, err := customerOf(ctx, u.customers, p)
	if err != nil {
		return AddressDTO{}, err
	}

	req = trimAddress(req)
	if req.Street == "" || req.Ward == "" || req.District == "" || req.City == "" {
		return AddressDTO{}, newKindError(ErrValidation, "street, ward, district and city are required")
	}

	now := u.now()
	created, err := u.addresses.Create(ctx, model.Address{
		CustomerID: c.ID,
		Street:     req.Street,
		Ward:       req.Ward,
		District:   req.District,
		City:       req.City,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return AddressDTO{}, errDB()
	}
	return toAddressDTO(&created), nil
}

func (u *AddressUsecase) Update(ctx context.Context, p model.Principal, addressID int64, req AddressRequest) error {
	a, err := u.owned(ctx, p, addressID)
	if err != nil {
		return err
	}

	req = trimAddress(req)
	if req.Street == "" || req.Ward == "" || req.District == "" || req.City == "" {
		return newKindError(ErrValidation, "street, ward, district and city are required")
	}

	a.Street = req.Street
	a.Ward = req.Ward
	a.District = req.District
	a.City = req.City
	a.UpdatedAt = u.now()

	if err := u.addresses.Update(ctx, a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrNotFound, "address not found")
		}
		return errDB()
	}
	return nil
}

func (u *AddressUsecase) Delete(ctx context.Context, p model.Principal, addressID int64) error {
	if _, err := u.owned(ctx, p, addressID); err != nil {
		return err
	}

	if err := u.addresses.Delete(ctx, addressID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrNotFound, "address not found")
		}
		return errDB()
	}
	return nil
}

func (u *AddressUsecase) SetDefault(ctx context.Context, p model.Principal, addressID int64) error {
	a, err := u.owned(ctx, p, addressID)
	if err != nil {
		return err
	}

	//顧客内でdefaultは1つ
	if err := u.addresses.SetDefault(ctx, a.CustomerID, addressID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrNotFound, "address not found")
		}
		return errDB()
	}
	return nil
}

// 他人の住所は存在しない扱い
func (u *AddressUsecase) owned(ctx context.Context, p model.Principal, addressID int64) (model.Address, error) {
	if addressID <= 0 {
		return model.Address{}, newKindError(ErrValidation, "invalid id")
	}

	c, err := customerOf(ctx, u.customers, p)
	if err != nil {
		return model.Address{}, err
	}

	a, err := u.addresses.FindByID(ctx, addressID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Address{}, newKindError(ErrNotFound, "address not found")
	}
	if err != nil {
		return model.Address{}, errDB()
	}
	if a.CustomerID != c.ID {
		return model.Address{}, newKindError(ErrNotFound, "address not found")
	}
	return a, nil
}

func trimAddress(req AddressRequest) AddressRequest {
	return AddressRequest{
		Street:   strings.TrimSpace(req.Street),
		Ward:     strings.TrimSpace(req.Ward),
		District: strings.TrimSpace(req.District),
		City:     strings.TrimSpace(req.City),
	}
}

func toAddressDTO(a *model.Address) AddressDTO {
	dto := AddressDTO{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Street:     a.Street,
		Ward:       a.Ward,
		District:   a.District,
		City:       a.City,
		IsDefault:  a.IsDefault,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
	t := a.UpdatedAt.Format(time.RFC3339)
	dto.UpdatedAt = &t
	return dto
}
