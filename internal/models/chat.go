package models

// Chat — элемент списка чатов пользователя.
type Chat struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
