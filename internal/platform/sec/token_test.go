// Copyright (c) 2026 Gamedex. All rights reserved.
// Author: minh.nguyenvu.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngvu/gamedex/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

/*
TestTokenService_SignVerify verifies the round trip: a signed token verifies
back into the same subject.
*/
func TestTokenService_SignVerify(t *testing.T) {
	service, err := sec.NewTokenService(testSecret)
	require.NoError(t, err)

	token, err := service.Sign("ops-minh", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ops-minh", claims.Subject)
}

/*
TestTokenService_Expired verifies an expired token is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService(testSecret)
	require.NoError(t, err)

	token, err := service.Sign("ops-minh", -time.Minute)
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret verifies a token signed under a different
secret does not verify.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	signer, err := sec.NewTokenService(testSecret)
	require.NoError(t, err)
	verifier, err := sec.NewTokenService("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)

	token, err := signer.Sign("ops-minh", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_ShortSecretRejected verifies the minimum secret length is
enforced at construction.
*/
func TestTokenService_ShortSecretRejected(t *testing.T) {
	_, err := sec.NewTokenService("too-short")
	assert.Error(t, err)
}

/*
TestTokenService_GarbageToken verifies malformed input fails verification.
*/
func TestTokenService_GarbageToken(t *testing.T) {
	service, err := sec.NewTokenService(testSecret)
	require.NoError(t, err)

	_, err = service.Verify("not.a.token")
	assert.Error(t, err)
}
