package desk_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
)

func TestLoginRejectsBadCredentials(t *testing.T) {
	baseURL, cleanup := setupRegistryContainer(t)
	defer cleanup()

	sdk := healthsdk.NewSDKClient(baseURL + "/api")
	_, err := sdk.Login(t.Context(), healthsdk.LoginRequest{Username: staffUsername, Password: "wrong"})
	require.ErrorIs(t, err, healthsdk.ErrUnauthenticated)

	var sdkErr *healthsdk.Error
	require.ErrorAs(t, err, &sdkErr)
	require.Equal(t, "Invalid credentials", sdkErr.Message)
}

func TestClientRegistryFlow(t *testing.T) {
	baseURL, cleanup := setupRegistryContainer(t)
	defer cleanup()

	client, tokens := loginClient(t, baseURL)
	ctx := t.Context()

	hiv, err := client.CreateProgram(ctx, healthsdk.ProgramRequest{Name: "HIV", Description: "HIV care"})
	require.NoError(t, err)

	alice, err := client.CreateClient(ctx, healthsdk.CreateClientRequest{
		FirstName:   "Alice",
		LastName:    "Wanjiru",
		Email:       "alice@example.com",
		DateOfBirth: "1985-02-14",
		Gender:      healthsdk.GenderFemale,
	})
	require.NoError(t, err)

	msg, err := client.CreateEnrollment(ctx, alice.ID, hiv.ID)
	require.NoError(t, err)
	require.Equal(t, "Client enrolled in program", msg.Message)

	found, err := client.SearchClients(ctx, "wanj")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.True(t, found[0].InProgram(hiv.ID))

	all, err := client.SearchClients(ctx, "")
	require.NoError(t, err)
	listed, err := client.ListClients(ctx)
	require.NoError(t, err)
	require.Equal(t, listed, all)

	require.NoError(t, client.DeleteEnrollment(ctx, alice.ID, hiv.ID))
	got, err := client.GetClient(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, got.Programs)

	t.Run("rejected token is forgotten", func(t *testing.T) {
		require.NoError(t, tokens.SetToken(ctx, "garbage", false))

		_, err := client.ListClients(ctx)
		require.ErrorIs(t, err, healthsdk.ErrUnauthenticated)
		require.False(t, tokens.HasToken(ctx))
	})
}
