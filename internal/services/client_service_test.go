package services_test

import (
	"errors"
	"strings"
	"testing"

	"dj_store_backend/internal/services"

	"github.com/stretchr/testify/require"
)

func newClientFixture(t *testing.T) (*memoryClientRepo, *recordingMailer, services.ClientService) {
	t.Helper()
	repo := newMemoryClientRepo()
	mail := newRecordingMailer()
	cs := services.NewClientService(repo, nil, services.NewBcryptHasher(), mail)
	return repo, mail, cs
}

func TestRegisterClientStoresHashedTempPassword(t *testing.T) {
	repo, mail, cs := newClientFixture(t)
	registerClient(t, cs, "a@x.com")

	client, err := repo.GetClientByEmail("a@x.com")
	require.NoError(t, err)
	require.True(t, client.IsActive)
	require.Nil(t, client.ResetToken)

	tempPassword := mail.welcomePasswords["a@x.com"]
	require.True(t, strings.HasPrefix(tempPassword, "dj"))
	require.NotEqual(t, tempPassword, client.PasswordHash)
	require.NotContains(t, client.PasswordHash, tempPassword)
}

func TestRegisterClientDuplicateEmail(t *testing.T) {
	repo, _, cs := newClientFixture(t)
	registerClient(t, cs, "a@x.com")

	err := cs.RegisterClient(services.RegisterClientRequest{
		Name:    "Someone Else",
		Email:   "a@x.com",
		Phone:   "0988888888",
		Address: "Calle Falsa 456",
		City:    "Guayaquil",
	})
	require.ErrorIs(t, err, services.ErrEmailExists)

	clients, err := repo.GetActiveClients()
	require.NoError(t, err)
	require.Len(t, clients, 1)
}

func TestRegisterClientNamesMissingField(t *testing.T) {
	_, _, cs := newClientFixture(t)

	err := cs.RegisterClient(services.RegisterClientRequest{
		Name:    "Ana Torres",
		Email:   "a@x.com",
		Phone:   "",
		Address: "Av. Central 123",
		City:    "Quito",
	})
	require.ErrorIs(t, err, services.ErrClientValidation)
	require.Contains(t, err.Error(), "phone")
}

func TestRegisterClientSurvivesMailFailure(t *testing.T) {
	repo, mail, cs := newClientFixture(t)
	mail.welcomeErr = errors.New("smtp unreachable")

	registerClient(t, cs, "a@x.com")

	// The account must exist even though the welcome mail failed.
	_, err := repo.GetClientByEmail("a@x.com")
	require.NoError(t, err)
}

func TestSoftDeleteIdempotent(t *testing.T) {
	repo, _, cs := newClientFixture(t)
	registerClient(t, cs, "a@x.com")

	client, err := repo.GetClientByEmail("a@x.com")
	require.NoError(t, err)

	require.NoError(t, cs.DeactivateClient(client.ID))
	require.NoError(t, cs.DeactivateClient(client.ID))

	// Still reachable by id and email, just excluded from listings.
	fetched, err := cs.GetClientByID(client.ID)
	require.NoError(t, err)
	require.False(t, fetched.IsActive)

	profiles, err := cs.GetActiveClients()
	require.NoError(t, err)
	require.Empty(t, profiles)
}

func TestSoftDeleteUnknownClient(t *testing.T) {
	_, _, cs := newClientFixture(t)
	require.ErrorIs(t, cs.DeactivateClient(42), services.ErrClientNotFound)
}

func TestUpdateClientMergesFields(t *testing.T) {
	repo, _, cs := newClientFixture(t)
	registerClient(t, cs, "a@x.com")

	client, err := repo.GetClientByEmail("a@x.com")
	require.NoError(t, err)

	newCity := "Cuenca"
	updated, err := cs.UpdateClient(client.ID, services.UpdateClientRequest{City: &newCity})
	require.NoError(t, err)
	require.Equal(t, "Cuenca", updated.City)
	require.Equal(t, client.Name, updated.Name)
}

func TestUpdateClientRejectsEmptyField(t *testing.T) {
	repo, _, cs := newClientFixture(t)
	registerClient(t, cs, "a@x.com")

	client, err := repo.GetClientByEmail("a@x.com")
	require.NoError(t, err)

	empty := "   "
	_, err = cs.UpdateClient(client.ID, services.UpdateClientRequest{Name: &empty})
	require.ErrorIs(t, err, services.ErrClientValidation)
}

func TestUpdateClientUnknownID(t *testing.T) {
	_, _, cs := newClientFixture(t)
	name := "Nobody"
	_, err := cs.UpdateClient(42, services.UpdateClientRequest{Name: &name})
	require.ErrorIs(t, err, services.ErrClientNotFound)
}

func TestListExcludesCredentialFields(t *testing.T) {
	_, _, cs := newClientFixture(t)
	registerClient(t, cs, "a@x.com")

	profiles, err := cs.GetActiveClients()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, "a@x.com", profiles[0].Email)
}
