package feature

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/idudko/go-autoclean/internal/example/userstore"
	"github.com/idudko/go-autoclean/pkg/autoclean"
)

// UserFeature is the fixture for the "add user" feature. Scenario state lives
// in its own fields; the store is read-only and the embedded Runner is its
// base, so TearDown leaves both alone.
type UserFeature struct {
	Runner
	db    userstore.Store `clean:"readonly"`
	name  string
	login string
	id    uuid.UUID
	err   error
}

func NewUserFeature(db userstore.Store, logger zerolog.Logger) *UserFeature {
	return &UserFeature{
		Runner: NewRunner("adding users", logger),
		db:     db,
	}
}

// TearDown clears the scenario state declared on UserFeature.
func (f *UserFeature) TearDown() error {
	return autoclean.ResetAs[UserFeature](f, autoclean.WithHierarchy(autoclean.Declared))
}

// AddingNewUserToDatabase registers a user and reads it back.
func (f *UserFeature) AddingNewUserToDatabase(ctx context.Context) error {
	return f.RunScenario("adding new user to database",
		Given(`a new user with name "Tom"`, f.aNewUserWithName("Tom")),
		And(`user login is specified "tomxx2"`, f.userLoginIsSpecified("tomxx2")),
		When("user clicks add button", f.userClicksAddButton(ctx)),
		Then("user is added to database", f.userIsAddedToDatabase),
		And("user identifier is returned", f.userIdentifierIsReturned),
		And("user details can be retrieved by identifier", f.userCanBeRetrievedByID(ctx)),
		And("user details can be retrieved by name", f.userCanBeRetrievedByName(ctx)),
	)
}

// MandatoryFieldsValidation submits a user without a login.
func (f *UserFeature) MandatoryFieldsValidation(ctx context.Context) error {
	return f.RunScenario("mandatory fields validation",
		Given(`a new user with name "Laura"`, f.aNewUserWithName("Laura")),
		When("user clicks add button", f.userClicksAddButton(ctx)),
		Then(`error "please provide login" is displayed`, f.anErrorIsDisplayed("please provide login")),
		And("user is not added to database", f.userIsNotAddedToDatabase(ctx)),
	)
}

func (f *UserFeature) aNewUserWithName(name string) func() error {
	return func() error {
		f.name = name
		return nil
	}
}

func (f *UserFeature) userLoginIsSpecified(login string) func() error {
	return func() error {
		f.login = login
		return nil
	}
}

func (f *UserFeature) userClicksAddButton(ctx context.Context) func() error {
	return func() error {
		f.id, f.err = f.db.AddUser(ctx, f.name, f.login)
		return nil
	}
}

func (f *UserFeature) userIsAddedToDatabase() error {
	if f.err != nil {
		return fmt.Errorf("unexpected error: %w", f.err)
	}
	return nil
}

func (f *UserFeature) userIdentifierIsReturned() error {
	if f.id == uuid.Nil {
		return errors.New("empty user identifier")
	}
	return nil
}

func (f *UserFeature) userCanBeRetrievedByID(ctx context.Context) func() error {
	return func() error {
		_, err := f.db.GetUser(ctx, f.id)
		return err
	}
}

func (f *UserFeature) userCanBeRetrievedByName(ctx context.Context) func() error {
	return func() error {
		_, err := f.db.FindUserByName(ctx, f.name)
		return err
	}
}

func (f *UserFeature) anErrorIsDisplayed(message string) func() error {
	return func() error {
		if f.err == nil {
			return errors.New("expected an error")
		}
		if f.err.Error() != message {
			return fmt.Errorf("expected error %q, got %q", message, f.err.Error())
		}
		return nil
	}
}

func (f *UserFeature) userIsNotAddedToDatabase(ctx context.Context) func() error {
	return func() error {
		_, err := f.db.FindUserByName(ctx, f.name)
		if errors.Is(err, userstore.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("user %q was added", f.name)
	}
}

// State reports the scenario fields, for diagnostics.
func (f *UserFeature) State() (name, login string, id uuid.UUID, err error) {
	return f.name, f.login, f.id, f.err
}

// Store returns the fixture store.
func (f *UserFeature) Store() userstore.Store {
	return f.db
}
