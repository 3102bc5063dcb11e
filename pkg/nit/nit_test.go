package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclonet/factonet-api/pkg/nit"
)

func TestVerificationDigit(t *testing.T) {
	dv, err := nit.VerificationDigit("900.123.456")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), dv)

	dv, err = nit.VerificationDigit("901515884")
	require.NoError(t, err)
	assert.Equal(t, byte('3'), dv)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, nit.Validate("900123456-8"))
	assert.NoError(t, nit.Validate("900.123.456-8"))
	assert.Error(t, nit.Validate("900123456-1"), "DV incorrecto")
	assert.Error(t, nit.Validate("900123456"), "sin DV")
	assert.Error(t, nit.Validate("12-3"))
}

func TestFormat(t *testing.T) {
	got, err := nit.Format("900 123 456")
	require.NoError(t, err)
	assert.Equal(t, "900123456-8", got)

	_, err = nit.Format("123")
	assert.Error(t, err)
}
