package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de validación del token. El middleware y los tests distinguen
// entre firma inválida, token vencido y token malformado.
var (
	ErrTokenExpired   = errors.New("jwt: token expirado")
	ErrTokenSignature = errors.New("jwt: firma inválida")
	ErrTokenMalformed = errors.New("jwt: token malformado")
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Subject es el telegram_id del usuario; Role es una foto del rol al momento de
// emitir: los middlewares NO confían en él y re-resuelven el rol vivo en cada request.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"` // "employee" | "manager" | "admin"
}

// Generate genera un token de sesión firmado (HS256) con sub=telegramID y el rol actual.
// expMinutes define la ventana de validez (exp = now + expMinutes).
func Generate(secret, telegramID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   telegramID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y vigencia del token y devuelve telegramID y role.
// La firma se verifica antes que la expiración: un token manipulado reporta
// ErrTokenSignature aunque además esté vencido.
func Parse(secret, tokenString string) (telegramID, role string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", "", ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", "", ErrTokenExpired
		default:
			return "", "", ErrTokenMalformed
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", ErrTokenMalformed
	}
	if claims.Subject == "" {
		return "", "", ErrTokenMalformed
	}
	return claims.Subject, claims.Role, nil
}
