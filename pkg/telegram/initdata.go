// Package telegram verifica el initData que la Mini App de Telegram entrega al cliente.
// La firma se valida SIEMPRE antes de leer cualquier campo del payload:
// https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidInitData payload de login ilegible, sin firma o con firma incorrecta.
var ErrInvalidInitData = errors.New("telegram: initData inválido")

// Claims datos verificados extraídos del initData.
type Claims struct {
	TelegramID string
	Username   string
	FirstName  string
	LastName   string
}

// FullName nombre visible del usuario (first + last, recortado).
func (c Claims) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Verifier valida initData contra el token del bot.
type Verifier struct {
	botToken string
}

// NewVerifier construye el verificador. El botToken no puede ser vacío:
// sin secreto no hay forma de validar la firma.
func NewVerifier(botToken string) *Verifier {
	return &Verifier{botToken: botToken}
}

// initDataUser estructura del campo `user` (JSON) que envía Telegram.
type initDataUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Verify valida la firma HMAC del initData y devuelve los claims de identidad.
// Pasos: parsear pares key=value, verificar el campo hash contra la cadena de
// chequeo firmada con HMAC-SHA256(secret="WebAppData" ⊕ botToken), y solo
// entonces extraer el identificador de usuario.
func (v *Verifier) Verify(initData string) (*Claims, error) {
	if v.botToken == "" {
		return nil, fmt.Errorf("%w: bot token no configurado", ErrInvalidInitData)
	}
	if initData == "" {
		return nil, fmt.Errorf("%w: payload vacío", ErrInvalidInitData)
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, fmt.Errorf("%w: falta el campo hash", ErrInvalidInitData)
	}

	if !hmac.Equal([]byte(gotHash), []byte(v.computeHash(values))) {
		return nil, fmt.Errorf("%w: firma incorrecta", ErrInvalidInitData)
	}

	// A partir de aquí el payload es confiable.
	claims, err := extractClaims(values)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// computeHash calcula el HMAC hex de la cadena de chequeo:
// líneas "key=valor" (sin hash) ordenadas alfabéticamente y unidas por '\n'.
func (v *Verifier) computeHash(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}
	dataCheckString := strings.Join(lines, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(v.botToken))
	secretKey := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(dataCheckString))
	return hex.EncodeToString(mac.Sum(nil))
}

// extractClaims lee la identidad del payload ya verificado. Telegram moderno envía
// un campo `user` con JSON; clientes viejos mandan id/username/first_name planos.
// Sin identificador de usuario el login no puede continuar.
func extractClaims(values url.Values) (*Claims, error) {
	if raw := values.Get("user"); raw != "" {
		var u initDataUser
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return nil, fmt.Errorf("%w: campo user ilegible", ErrInvalidInitData)
		}
		if u.ID == 0 {
			return nil, fmt.Errorf("%w: falta el id de usuario", ErrInvalidInitData)
		}
		return &Claims{
			TelegramID: strconv.FormatInt(u.ID, 10),
			Username:   u.Username,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
		}, nil
	}

	id := values.Get("id")
	if id == "" {
		return nil, fmt.Errorf("%w: falta el id de usuario", ErrInvalidInitData)
	}
	return &Claims{
		TelegramID: id,
		Username:   values.Get("username"),
		FirstName:  values.Get("first_name"),
		LastName:   values.Get("last_name"),
	}, nil
}
