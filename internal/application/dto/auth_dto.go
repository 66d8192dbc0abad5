package dto

// TelegramAuthRequest entrada del login: el initData crudo que entrega la Mini App.
// El cliente web lo envía como campo _auth de un formulario.
type TelegramAuthRequest struct {
	InitData string `json:"init_data" form:"_auth"`
}

// TokenResponse salida del login: token de sesión tipo bearer.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}
