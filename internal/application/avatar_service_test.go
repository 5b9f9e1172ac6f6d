package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/t2-user-service/internal/application"
	"github.com/oksasatya/t2-user-service/internal/domain/provider"
	"github.com/oksasatya/t2-user-service/internal/infrastructure/memory"
)

func TestAvatarService_FirstAvatar(t *testing.T) {
	r := memory.NewUserRepository()
	u := seedUser(t, r, "johndoe@example.com", "16543219076")
	st := new(mockStorage)
	st.On("SaveFile", mock.Anything, "avatar.jpg").Return("avatar.jpg", nil).Once()
	svc := application.NewAvatarService(r, st, nil, nil)

	got, err := svc.UpdateAvatar(context.Background(), u.ID, "avatar.jpg")
	require.NoError(t, err)
	require.NotNil(t, got.Avatar)
	assert.Equal(t, "avatar.jpg", *got.Avatar)

	st.AssertExpectations(t)
	st.AssertNotCalled(t, "DeleteFile", mock.Anything, mock.Anything)
}

func TestAvatarService_ReplacesPreviousAvatar(t *testing.T) {
	r := memory.NewUserRepository()
	u := seedUser(t, r, "johndoe@example.com", "16543219076")
	st := new(mockStorage)
	st.On("SaveFile", mock.Anything, "avatar.jpg").Return("avatar.jpg", nil).Once()
	st.On("SaveFile", mock.Anything, "avatar2.jpg").Return("avatar2.jpg", nil).Once()
	st.On("DeleteFile", mock.Anything, "avatar.jpg").Return(nil).Once()
	svc := application.NewAvatarService(r, st, nil, nil)
	ctx := context.Background()

	_, err := svc.UpdateAvatar(ctx, u.ID, "avatar.jpg")
	require.NoError(t, err)
	got, err := svc.UpdateAvatar(ctx, u.ID, "avatar2.jpg")
	require.NoError(t, err)

	assert.Equal(t, "avatar2.jpg", *got.Avatar)
	st.AssertExpectations(t)
	st.AssertNumberOfCalls(t, "DeleteFile", 1)

	stored, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "avatar2.jpg", *stored.Avatar)
}

func TestAvatarService_MissingPreviousFileIsIgnored(t *testing.T) {
	r := memory.NewUserRepository()
	u := seedUser(t, r, "johndoe@example.com", "16543219076")
	old := "gone.jpg"
	u.Avatar = &old
	require.NoError(t, r.Save(context.Background(), u))

	st := new(mockStorage)
	st.On("DeleteFile", mock.Anything, "gone.jpg").Return(provider.ErrFileNotFound).Once()
	st.On("SaveFile", mock.Anything, "new.jpg").Return("new.jpg", nil).Once()
	svc := application.NewAvatarService(r, st, nil, nil)

	got, err := svc.UpdateAvatar(context.Background(), u.ID, "new.jpg")
	require.NoError(t, err)
	assert.Equal(t, "new.jpg", *got.Avatar)
	st.AssertExpectations(t)
}

func TestAvatarService_Errors(t *testing.T) {
	r := memory.NewUserRepository()
	u := seedUser(t, r, "johndoe@example.com", "16543219076")

	t.Run("unknown user", func(t *testing.T) {
		st := new(mockStorage)
		svc := application.NewAvatarService(r, st, nil, nil)
		_, err := svc.UpdateAvatar(context.Background(), "non-existing", "avatar.jpg")
		assert.ErrorIs(t, err, application.ErrUserNotFound)
		st.AssertNotCalled(t, "SaveFile", mock.Anything, mock.Anything)
	})

	t.Run("save failure leaves user untouched", func(t *testing.T) {
		st := new(mockStorage)
		st.On("SaveFile", mock.Anything, "avatar.jpg").Return("", errors.New("bucket unavailable")).Once()
		svc := application.NewAvatarService(r, st, nil, nil)

		_, err := svc.UpdateAvatar(context.Background(), u.ID, "avatar.jpg")
		assert.Error(t, err)

		stored, err := r.FindByID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.Avatar)
	})
}

func TestAvatarService_FailedUploadKeepsPreviousAvatar(t *testing.T) {
	r := memory.NewUserRepository()
	u := seedUser(t, r, "johndoe@example.com", "16543219076")
	old := "old.jpg"
	u.Avatar = &old
	require.NoError(t, r.Save(context.Background(), u))

	st := new(mockStorage)
	st.On("SaveFile", mock.Anything, "new.jpg").Return("", errors.New("bucket down")).Once()
	svc := application.NewAvatarService(r, st, nil, nil)

	_, err := svc.UpdateAvatar(context.Background(), u.ID, "new.jpg")
	assert.EqualError(t, err, "bucket down")
	st.AssertNotCalled(t, "DeleteFile", mock.Anything, mock.Anything)

	stored, err := r.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Avatar)
	assert.Equal(t, "old.jpg", *stored.Avatar)
}

func TestAvatarService_DeleteFailureDiscardsNewFile(t *testing.T) {
	r := memory.NewUserRepository()
	u := seedUser(t, r, "johndoe@example.com", "16543219076")
	old := "old.jpg"
	u.Avatar = &old
	require.NoError(t, r.Save(context.Background(), u))

	st := new(mockStorage)
	st.On("SaveFile", mock.Anything, "new.jpg").Return("new.jpg", nil).Once()
	st.On("DeleteFile", mock.Anything, "old.jpg").Return(errors.New("permission denied")).Once()
	st.On("DeleteFile", mock.Anything, "new.jpg").Return(nil).Once()
	svc := application.NewAvatarService(r, st, nil, nil)

	_, err := svc.UpdateAvatar(context.Background(), u.ID, "new.jpg")
	assert.EqualError(t, err, "permission denied")
	st.AssertExpectations(t)

	stored, err := r.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "old.jpg", *stored.Avatar)
}
