package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_FirstRegisteredUserIsAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.users.Register(ctx, dto.RegisterRequest{Email: "Admin@Example.com", Password: "secret1", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, first.Role)
	assert.Equal(t, "admin@example.com", first.Email)

	second, err := f.users.Register(ctx, dto.RegisterRequest{Email: "ed@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, second.Role)

	_, err = f.users.Register(ctx, dto.RegisterRequest{Email: "ED@example.com", Password: "secret1"})
	requireStatus(t, err, http.StatusConflict, MsgDuplicateEmail)

	_, err = f.users.Register(ctx, dto.RegisterRequest{Email: "short@example.com", Password: "123"})
	requireStatus(t, err, http.StatusBadRequest, MsgPasswordTooShort)

	isAdmin, err := f.users.IsAdmin(first.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
	isAdmin, err = f.users.IsAdmin(second.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestUserService_ConcurrentRegistrationsYieldOneAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 6
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.users.Register(ctx, dto.RegisterRequest{
				Email:    fmt.Sprintf("user%d@example.com", i),
				Password: "secret1",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var admins int64
	require.NoError(t, f.db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)
}

func TestUserService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	usr, err := f.users.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "s3cret!"})
	require.NoError(t, err)

	res, err := f.users.Login(dto.UserLogin{Email: "ana@example.com", Password: "s3cret!"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, usr.ID, res.User.ID)

	claims, err := helper.SetupAuth("test-secret").VerifyToken("Bearer " + res.Token)
	require.NoError(t, err)
	assert.Equal(t, int(usr.ID), claims.UserID)

	_, err = f.users.Login(dto.UserLogin{Email: "ana@example.com", Password: "wrong"})
	requireStatus(t, err, http.StatusUnauthorized, MsgWrongCredentials)

	_, err = f.users.Login(dto.UserLogin{Email: "nobody@example.com", Password: "s3cret!"})
	requireStatus(t, err, http.StatusUnauthorized, MsgWrongCredentials)

	_, err = f.users.Login(dto.UserLogin{Email: "ana@example.com"})
	requireStatus(t, err, http.StatusBadRequest, MsgCredentials)
}

func TestUserService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.users.Register(ctx, dto.RegisterRequest{Email: "admin@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.users.Create(ctx, admin.ID, dto.UserCreateRequest{Email: "x@example.com", Password: "secret1", Role: "OWNER"})
	requireStatus(t, err, http.StatusBadRequest, MsgInvalidRole)

	created, err := f.users.Create(ctx, admin.ID, dto.UserCreateRequest{Email: "boss@example.com", Password: "secret1", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, created.Role)

	users, total, err := f.users.List(dto.PageQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	logs := f.logs(t, domain.EntityUser, created.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, admin.ID, logs[0].UserID)

	me, err := f.users.Me(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", me.Email)

	_, err = f.users.Me(999)
	requireStatus(t, err, http.StatusNotFound, MsgUserNotFound)
}
