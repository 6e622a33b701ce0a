package dto

// LoginRequest первый шаг входа администратора
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse сообщает клиенту, что код отправлен и нужен второй шаг
type LoginResponse struct {
	Step string `json:"step"`
}

// VerifyRequest второй шаг входа: одноразовый код из Telegram
type VerifyRequest struct {
	Username string `json:"username"`
	Code     Code   `json:"code"`
}

// VerifyResponse успешный вход
type VerifyResponse struct {
	Msg   string `json:"msg"`
	Token string `json:"token"`
}
