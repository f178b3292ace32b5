package aggregates

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yungbote/registrar-backend/internal/data/store"
	types "github.com/yungbote/registrar-backend/internal/domain"
	domainagg "github.com/yungbote/registrar-backend/internal/domain/aggregates"
)

type UserAggregateDeps struct {
	BaseDeps
	Users    store.EntityStore[types.User]
	Profiles store.EntityStore[types.Profile]
}

type userAggregate struct {
	rec *Reconciler[types.User, types.Profile]
}

func NewUserAggregate(deps UserAggregateDeps) (domainagg.UserAggregate, error) {
	rec, err := NewReconciler(Binding[types.User, types.Profile]{
		Name:        "user",
		Kind:        domainagg.UserAggregateContract.Collection,
		Roots:       deps.Users,
		RootKey:     func(u *types.User) uuid.UUID { return u.ID },
		SetChildren: setUserProfile,
		Children:    deps.Profiles,
		OwnerColumn: "user_id",
		OwnerOf:     func(p *types.Profile) uuid.UUID { return p.UserID },
		Adopt: func(u *types.User, p *types.Profile) {
			p.ID = uuid.Nil
			p.UserID = u.ID
		},
	}, deps.BaseDeps)
	if err != nil {
		return nil, err
	}
	return &userAggregate{rec: rec}, nil
}

func (a *userAggregate) Contract() domainagg.Contract {
	return domainagg.UserAggregateContract
}

func (a *userAggregate) Create(ctx context.Context, in domainagg.CreateUserInput) (*types.User, error) {
	if err := validateInput("user.create", in); err != nil {
		return nil, err
	}
	u := &types.User{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
	}
	var profiles []*types.Profile
	if in.Profile != nil {
		profiles = append(profiles, profileFromInput(*in.Profile))
	}
	return a.rec.Create(ctx, u, profiles)
}

func (a *userAggregate) Update(ctx context.Context, id uuid.UUID, in domainagg.UpdateUserInput) (*types.User, error) {
	const op = "user.update"
	if err := validateInput(op, in); err != nil {
		return nil, err
	}
	if in.Profile != nil && in.RemoveProfile {
		return nil, InvalidArgumentError(op, "profile and remove_profile are mutually exclusive")
	}
	values := map[string]any{}
	if in.Username != nil {
		values["username"] = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		values["email"] = strings.TrimSpace(*in.Email)
	}
	var profile Collection[types.Profile]
	switch {
	case in.Profile != nil:
		profile = Replace([]*types.Profile{profileFromInput(*in.Profile)})
	case in.RemoveProfile:
		profile = Replace[types.Profile](nil)
	}
	return a.rec.Update(ctx, id, values, profile)
}

func (a *userAggregate) Delete(ctx context.Context, id uuid.UUID) (*types.User, error) {
	return a.rec.Delete(ctx, id)
}

func (a *userAggregate) Get(ctx context.Context, id uuid.UUID) (*types.User, error) {
	return a.rec.Get(ctx, id)
}

func (a *userAggregate) List(ctx context.Context, filter map[string]any) ([]*types.User, error) {
	return a.rec.List(ctx, store.Filter(filter))
}

func setUserProfile(u *types.User, profiles []*types.Profile) {
	u.Profile = nil
	if len(profiles) > 0 {
		u.Profile = profiles[0]
	}
}

func profileFromInput(in domainagg.ProfileInput) *types.Profile {
	p := &types.Profile{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		p.Bio = &bio
	}
	return p
}
