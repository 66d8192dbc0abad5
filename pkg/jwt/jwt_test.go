package jwt_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/miniapp-api/pkg/jwt"
)

const (
	testSecret     = "test-secret-key-for-unit-tests"
	testTelegramID = "111111111"
	testIssuer     = "miniapp-api-test"
	testExpMin     = 60
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testTelegramID, "manager", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	telegramID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testTelegramID, telegramID)
	assert.Equal(t, "manager", role)
}

func TestParse_TokenExpirado(t *testing.T) {
	// Ventana de -1 minuto: el token nace vencido.
	tok, err := pkgjwt.Generate(testSecret, testTelegramID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testTelegramID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenSignature)
}

// tamperRole reemplaza el claim de rol en el payload conservando la firma original.
// El JSON sigue siendo válido, así que lo único que puede fallar es la firma.
func tamperRole(t *testing.T, tok, oldRole, newRole string) string {
	t.Helper()
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	modified := strings.Replace(string(payload), `"role":"`+oldRole+`"`, `"role":"`+newRole+`"`, 1)
	require.NotEqual(t, string(payload), modified, "el payload debe cambiar")
	return parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(modified)) + "." + parts[2]
}

func TestParse_PayloadManipulado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testTelegramID, "employee", testIssuer, testExpMin)
	require.NoError(t, err)

	// Escalar el rol dentro del payload sin re-firmar debe invalidar la firma,
	// nunca pasar en silencio.
	tampered := tamperRole(t, tok, "employee", "admin")

	_, _, err = pkgjwt.Parse(testSecret, tampered)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenSignature)
}

func TestParse_FirmaAntesQueExpiracion(t *testing.T) {
	// Token vencido Y manipulado: debe reportarse la firma, no la expiración.
	tok, err := pkgjwt.Generate(testSecret, testTelegramID, "employee", testIssuer, -1)
	require.NoError(t, err)

	tampered := tamperRole(t, tok, "employee", "admin")

	_, _, err = pkgjwt.Parse(testSecret, tampered)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenSignature)
	assert.NotErrorIs(t, err, pkgjwt.ErrTokenExpired)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, _, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrTokenMalformed)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testTelegramID, "admin", testIssuer, testExpMin)
	assert.Error(t, err)
}
